// Package bootstrap turns a loaded configuration into the collaborators the
// commands hand to forms: theme classes, translations, storage disks, the
// definition store and the flash store.
package bootstrap

import (
	"context"
	"fmt"
	"os"

	"go.uber.org/zap"

	"github.com/goliatone/go-formbuilder/internal/config"
	"github.com/goliatone/go-formbuilder/pkg/chrome"
	"github.com/goliatone/go-formbuilder/pkg/definition"
	"github.com/goliatone/go-formbuilder/pkg/form"
	"github.com/goliatone/go-formbuilder/pkg/i18n"
	"github.com/goliatone/go-formbuilder/pkg/session"
)

// Env holds the resolved collaborators.
type Env struct {
	Config     *config.Config
	Logger     *zap.Logger
	Classes    *form.Classes
	Translator *i18n.Catalog
}

// New resolves the theme manifest and translation catalog named by cfg.
func New(cfg *config.Config, logger *zap.Logger) (*Env, error) {
	if cfg == nil {
		return nil, fmt.Errorf("bootstrap: nil config")
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	env := &Env{Config: cfg, Logger: logger}

	if cfg.Theme.Manifest != "" {
		classes, err := LoadThemeClasses(cfg.Theme.Manifest, cfg.Theme.Variant)
		if err != nil {
			return nil, err
		}
		env.Classes = &classes
		logger.Debug("theme loaded", zap.String("manifest", cfg.Theme.Manifest), zap.String("variant", cfg.Theme.Variant))
	}

	if cfg.I18n.Dir != "" {
		catalog, err := i18n.LoadFS(os.DirFS(cfg.I18n.Dir), cfg.I18n.Fallback)
		if err != nil {
			return nil, fmt.Errorf("bootstrap: load translations: %w", err)
		}
		env.Translator = catalog
		logger.Debug("translations loaded", zap.Strings("locales", catalog.Locales()))
	}
	return env, nil
}

// LoadThemeClasses reads a YAML theme manifest and returns its classes for
// variant.
func LoadThemeClasses(path, variant string) (form.Classes, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return form.Classes{}, fmt.Errorf("bootstrap: read theme manifest: %w", err)
	}
	manifest, err := chrome.ParseManifest(data)
	if err != nil {
		return form.Classes{}, err
	}
	return chrome.FromManifest(manifest, variant), nil
}

// FormOptions returns the configured defaults followed by extra.
func (e *Env) FormOptions(extra ...form.Option) []form.Option {
	opts := append([]form.Option{}, e.Config.Form.Options()...)
	opts = append(opts, form.WithLogger(e.Logger))
	if e.Classes != nil {
		opts = append(opts, form.WithClasses(*e.Classes))
	}
	if e.Translator != nil {
		opts = append(opts, form.WithTranslator(e.Translator))
	}
	if len(e.Config.Disks) > 0 {
		opts = append(opts, form.WithFileURLResolver(e.Config.StorageDisks()))
	}
	return append(opts, extra...)
}

// Build creates the form of def. The configured defaults come first, then
// the definition's own options, then extra.
func (e *Env) Build(def definition.Definition, extra ...form.Option) (*form.Form, error) {
	opts := append(e.FormOptions(), def.FormOptions()...)
	f := form.New(append(opts, extra...)...)
	if err := def.Apply(f); err != nil {
		return nil, err
	}
	return f, nil
}

// Definitions loads the configured definition directory.
func (e *Env) Definitions() (*definition.Store, error) {
	dir := e.Config.Definitions.Dir
	if _, err := os.Stat(dir); err != nil {
		return nil, fmt.Errorf("bootstrap: definitions dir: %w", err)
	}
	store, err := definition.LoadFS(os.DirFS(dir))
	if err != nil {
		return nil, err
	}
	e.Logger.Info("definitions loaded", zap.String("dir", dir), zap.Int("count", store.Len()))
	return store, nil
}

// FlashStore opens the configured flash store. The returned function
// releases it.
func (e *Env) FlashStore(ctx context.Context) (session.Store, func() error, error) {
	if e.Config.Session.Driver != config.DriverRedis {
		return session.NewMemoryStore(), func() error { return nil }, nil
	}
	store := session.NewRedisStore(e.Config.RedisStoreConfig())
	if err := store.Ping(ctx); err != nil {
		_ = store.Close()
		return nil, nil, fmt.Errorf("bootstrap: redis flash store: %w", err)
	}
	return store, store.Close, nil
}
