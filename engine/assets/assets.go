package assets

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/fsnotify/fsnotify"

	"github.com/spaghettifunk/cubana/engine/assets/loaders"
	"github.com/spaghettifunk/cubana/engine/core"
	"github.com/spaghettifunk/cubana/engine/renderer/metadata"
)

// AssetManager resolves logical texture names to files under the assets
// directory and watches that directory for changes. Changed paths are
// collected on the watcher goroutine and drained by the frame loop, so
// everything that reacts to a change still runs single-threaded.
type AssetManager struct {
	root        string
	imageLoader *loaders.ImageLoader

	mutex   sync.Mutex
	pending []string

	done     chan struct{}
	fsnotify *fsnotify.Watcher
	isClosed bool
}

func NewAssetManager() (*AssetManager, error) {
	fsWatch, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}

	return &AssetManager{
		imageLoader: &loaders.ImageLoader{},
		fsnotify:    fsWatch,
		done:        make(chan struct{}),
	}, nil
}

func (am *AssetManager) Initialize(assetsDir string) error {
	am.root = assetsDir

	if _, err := os.Stat(assetsDir); err != nil {
		core.LogWarn("assets directory %s not found; every texture will fall back", assetsDir)
		return nil
	}

	if err := am.addRecursive(assetsDir); err != nil {
		return err
	}

	go am.watch()
	return nil
}

// LoadTexture loads and decodes the texture with the given logical name,
// trying the supported extensions in order.
func (am *AssetManager) LoadTexture(name string) (*metadata.Texture, error) {
	for _, ext := range []string{".png", ".jpg", ".jpeg"} {
		path := filepath.Join(am.root, "textures", name+ext)
		if _, err := os.Stat(path); err != nil {
			continue
		}
		t, err := am.imageLoader.Load(path)
		if err != nil {
			return nil, err
		}
		t.Name = name
		return t, nil
	}
	return nil, fmt.Errorf("no texture file found for %q under %s", name, am.root)
}

// PendingChanges returns and clears the asset paths reported changed since
// the last call. Called once per frame by the engine.
func (am *AssetManager) PendingChanges() []string {
	am.mutex.Lock()
	defer am.mutex.Unlock()
	if len(am.pending) == 0 {
		return nil
	}
	out := am.pending
	am.pending = nil
	return out
}

// TextureNameForPath maps a changed file path back to its logical texture
// name, or "" when the path is not a texture asset.
func (am *AssetManager) TextureNameForPath(path string) string {
	dir := filepath.Join(am.root, "textures")
	rel, err := filepath.Rel(dir, path)
	if err != nil || strings.HasPrefix(rel, "..") {
		return ""
	}
	ext := filepath.Ext(rel)
	switch ext {
	case ".png", ".jpg", ".jpeg":
		return strings.TrimSuffix(rel, ext)
	}
	return ""
}

func (am *AssetManager) Shutdown() error {
	if am.isClosed {
		return errors.New("asset manager already closed")
	}
	am.isClosed = true
	close(am.done)
	return am.fsnotify.Close()
}

// addRecursive starts watching the named directory and all sub-directories.
func (am *AssetManager) addRecursive(name string) error {
	return filepath.Walk(name, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		if info.IsDir() {
			return am.fsnotify.Add(path)
		}
		return nil
	})
}

func (am *AssetManager) watch() {
	for {
		select {
		case <-am.done:
			return
		case event, ok := <-am.fsnotify.Events:
			if !ok {
				return
			}
			if event.Op&(fsnotify.Write|fsnotify.Create) == 0 {
				continue
			}
			core.LogDebug("asset changed on disk: %s", event.Name)
			am.mutex.Lock()
			am.pending = append(am.pending, event.Name)
			am.mutex.Unlock()
		case err, ok := <-am.fsnotify.Errors:
			if !ok {
				return
			}
			core.LogWarn("asset watcher error: %v", err)
		}
	}
}
