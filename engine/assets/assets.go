package assets

import (
	"errors"
	"fmt"
	"image"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/spaghettifunk/brushwork/engine/assets/loaders"
	"github.com/spaghettifunk/brushwork/engine/core"
)

type AssetType uint8

const (
	AssetTypeNone AssetType = iota
	AssetTypeImage
	AssetTypeFont
)

var ErrAssetNotFound = errors.New("asset not found")

type AssetInfo struct {
	Name       string
	Path       string
	Type       AssetType
	LastLoaded time.Time
}

/**
 * @brief Indexes the asset files under a directory and keeps the index current
 * while files are created, modified or removed. Assets are addressed by their
 * slash separated path relative to the root, without extension.
 */
type AssetManager struct {
	root    string
	assets  map[string]AssetInfo
	loaders map[AssetType]Loader

	mutex sync.RWMutex

	done     chan struct{}
	fsnotify *fsnotify.Watcher
	isClosed bool
	changes  chan string
}

func NewAssetManager() (*AssetManager, error) {
	fsWatch, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}

	return &AssetManager{
		assets:   make(map[string]AssetInfo),
		loaders:  make(map[AssetType]Loader),
		fsnotify: fsWatch,
		changes:  make(chan string, 64),
		done:     make(chan struct{}),
	}, nil
}

func (am *AssetManager) Initialize(assetsDir string) error {
	root, err := filepath.Abs(assetsDir)
	if err != nil {
		return err
	}
	am.root = root

	// Register loaders
	am.registerLoader(AssetTypeImage, &loaders.ImageLoader{FlipY: true, MaxSize: 2048})

	if err := am.watchRecursive(root, false); err != nil {
		return err
	}

	go am.start()
	core.LogInfo("indexed %d assets under %s", len(am.Names()), root)
	return nil
}

// Register loaders for each asset type
func (am *AssetManager) registerLoader(assetType AssetType, loader Loader) {
	am.loaders[assetType] = loader
}

/** @brief The names of all indexed assets, sorted. */
func (am *AssetManager) Names() []string {
	am.mutex.RLock()
	defer am.mutex.RUnlock()

	names := make([]string, 0, len(am.assets))
	for name := range am.assets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Lookup returns what is known about the asset called name.
func (am *AssetManager) Lookup(name string) (AssetInfo, bool) {
	am.mutex.RLock()
	defer am.mutex.RUnlock()
	info, ok := am.assets[name]
	return info, ok
}

/**
 * @brief Names of assets that were created or modified on disk. Receives are
 * expected between frames; changes are dropped while the buffer is full.
 */
func (am *AssetManager) Changes() <-chan string {
	return am.changes
}

/** @brief Loads the image asset called name from disk. */
func (am *AssetManager) LoadImage(name string) (*image.RGBA, error) {
	am.mutex.Lock()
	asset, exists := am.assets[name]
	if exists {
		// Update the loaded time
		asset.LastLoaded = time.Now()
		am.assets[name] = asset
	}
	am.mutex.Unlock()

	if !exists || asset.Type != AssetTypeImage {
		return nil, fmt.Errorf("image '%s': %w", name, ErrAssetNotFound)
	}

	loader, loaderExists := am.loaders[asset.Type]
	if !loaderExists {
		return nil, fmt.Errorf("no loader registered for asset type: %d", asset.Type)
	}
	return loader.Load(asset.Path)
}

/** @brief Loads the bitmap font asset called name along with its page sheet. */
func (am *AssetManager) LoadFont(name string) (*loaders.BitmapFont, error) {
	am.mutex.Lock()
	asset, exists := am.assets[name]
	if exists {
		asset.LastLoaded = time.Now()
		am.assets[name] = asset
	}
	am.mutex.Unlock()

	if !exists || asset.Type != AssetTypeFont {
		return nil, fmt.Errorf("font '%s': %w", name, ErrAssetNotFound)
	}
	return loaders.LoadBitmapFont(asset.Path)
}

func (am *AssetManager) Shutdown() error {
	if am.isClosed {
		return nil
	}
	am.isClosed = true
	close(am.done)
	return nil
}

func (am *AssetManager) start() {
	for {
		select {

		case e, ok := <-am.fsnotify.Events:
			if !ok {
				return
			}
			s, err := os.Stat(e.Name)
			if err == nil && s != nil && s.IsDir() {
				if e.Op&fsnotify.Create != 0 {
					if err := am.watchRecursive(e.Name, false); err != nil {
						core.LogWarn("failed to watch %s: %s", e.Name, err)
					}
				}
				continue
			}
			// Handle create or modify events
			if e.Op&(fsnotify.Create|fsnotify.Write) != 0 {
				if name, ok := am.handleFileEvent(e.Name); ok {
					am.notify(name)
				}
			}
			// Can't stat a deleted directory, so just try to remove it from the watch list.
			if e.Op&(fsnotify.Remove|fsnotify.Rename) != 0 {
				am.removeAsset(e.Name)
				_ = am.fsnotify.Remove(e.Name)
			}

		case err, ok := <-am.fsnotify.Errors:
			if !ok {
				return
			}
			core.LogError(err.Error())

		case <-am.done:
			am.fsnotify.Close()
			return
		}
	}
}

func (am *AssetManager) notify(name string) {
	select {
	case am.changes <- name:
	default:
		core.LogWarn("asset change for '%s' dropped", name)
	}
}

// watchRecursive adds all directories under the given one to the watch list
// and indexes the files found.
func (am *AssetManager) watchRecursive(path string, unWatch bool) error {
	return filepath.Walk(path, func(walkPath string, fi os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		if fi.IsDir() {
			if unWatch {
				return am.fsnotify.Remove(walkPath)
			}
			return am.fsnotify.Add(walkPath)
		}
		am.handleFileEvent(walkPath)
		return nil
	})
}

// Handle the creation or modification of a file
func (am *AssetManager) handleFileEvent(path string) (string, bool) {
	assetType := determineAssetType(path)
	if assetType == AssetTypeNone {
		return "", false
	}
	name, ok := am.assetName(path)
	if !ok {
		return "", false
	}

	am.mutex.Lock()
	defer am.mutex.Unlock()

	am.assets[name] = AssetInfo{
		Name: name,
		Path: path,
		Type: assetType,
	}
	return name, true
}

// Remove the asset from the index if it was deleted
func (am *AssetManager) removeAsset(path string) {
	name, ok := am.assetName(path)
	if !ok {
		return
	}

	am.mutex.Lock()
	defer am.mutex.Unlock()

	if info, exists := am.assets[name]; exists && info.Path == path {
		delete(am.assets, name)
	}
}

func (am *AssetManager) assetName(path string) (string, bool) {
	rel, err := filepath.Rel(am.root, path)
	if err != nil || strings.HasPrefix(rel, "..") {
		return "", false
	}
	rel = filepath.ToSlash(rel)
	return strings.TrimSuffix(rel, filepath.Ext(rel)), true
}

func determineAssetType(path string) AssetType {
	if loaders.IsImage(path) {
		return AssetTypeImage
	}
	if strings.EqualFold(filepath.Ext(path), ".fnt") {
		return AssetTypeFont
	}
	return AssetTypeNone
}
