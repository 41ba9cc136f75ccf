package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"

	"github.com/Faultbox/midgard-obj/internal/logger"
	"github.com/Faultbox/midgard-obj/pkg/mesh"
	"github.com/Faultbox/midgard-obj/pkg/wavefront"
)

func (a *app) cmdWatch(args []string) error {
	name, err := modelArg("watch", args)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	fmt.Fprintf(os.Stderr, "Watching %s (Ctrl+C to stop)\n", a.assets.Path(name))
	return a.watch(ctx, name, func(m *mesh.Model, err error) {
		if err != nil {
			fmt.Fprintf(os.Stderr, "%s  reload failed: %v\n", time.Now().Format("15:04:05"), err)
			return
		}
		fmt.Printf("%s  %s: %d vertices, %d triangles, %d groups\n",
			time.Now().Format("15:04:05"), name, len(m.Vertices), m.TriangleCount(), len(m.Groups))
	})
}

// watch loads the model once, then again after every change to it or its
// material library, until ctx is done. Bursts of events within the debounce
// window cause a single reload.
func (a *app) watch(ctx context.Context, name string, onLoad func(*mesh.Model, error)) error {
	log := logger.Named("watch")

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("creating watcher: %w", err)
	}
	defer watcher.Close()

	// Editors often replace files instead of writing them, so watch the
	// directory and match on file names.
	objPath := filepath.Clean(a.assets.Path(name))
	if err := watcher.Add(filepath.Dir(objPath)); err != nil {
		return fmt.Errorf("watching %s: %w", filepath.Dir(objPath), err)
	}

	watched := map[string]string{objPath: name}
	reload := func() {
		for _, asset := range watched {
			a.assets.Invalidate(asset)
		}
		m, err := a.loader.Load(name)
		if err == nil {
			a.trackMaterials(watcher, watched, name, log)
		}
		onLoad(m, err)
	}
	reload()

	var timer *time.Timer
	var fire <-chan time.Time
	for {
		select {
		case <-ctx.Done():
			return nil

		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if _, hit := watched[filepath.Clean(event.Name)]; !hit {
				continue
			}
			if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) && !event.Has(fsnotify.Rename) {
				continue
			}
			log.Debug("change detected", zap.String("file", event.Name), zap.Stringer("op", event.Op))
			if timer == nil {
				timer = time.NewTimer(a.cfg.Watch.Debounce)
			} else {
				timer.Reset(a.cfg.Watch.Debounce)
			}
			fire = timer.C

		case <-fire:
			fire = nil
			reload()

		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			log.Warn("watcher error", zap.Error(err))
		}
	}
}

// trackMaterials adds the model's material library to the watched set.
func (a *app) trackMaterials(watcher *fsnotify.Watcher, watched map[string]string, name string, log *zap.Logger) {
	doc, err := a.loader.Document(name)
	if err != nil || doc.MtlLib == "" {
		return
	}
	asset := wavefront.MaterialPath(name, doc.MtlLib)
	path := filepath.Clean(a.assets.Path(asset))
	if _, ok := watched[path]; ok {
		return
	}
	if filepath.Dir(path) != filepath.Dir(a.assets.Path(name)) {
		if err := watcher.Add(filepath.Dir(path)); err != nil {
			log.Warn("cannot watch material library", zap.String("path", path), zap.Error(err))
			return
		}
	}
	watched[path] = asset
}
