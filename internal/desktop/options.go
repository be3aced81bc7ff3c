package desktop

import (
	"charm.land/log/v2"

	"github.com/Gaurav-Gosain/journalos/internal/config"
	"github.com/Gaurav-Gosain/journalos/internal/content"
)

// OptionsFromConfig picks the content source from cfg: a local directory
// when one is set, the REST API otherwise. Session and progress are left for
// the caller since they belong to one player.
func OptionsFromConfig(cfg *config.UserConfig, logger *log.Logger) Options {
	opts := Options{Config: cfg, Logger: logger}
	if cfg.Content.Dir != "" {
		src := content.NewDirSource(cfg.Content.Dir)
		if logger != nil {
			src.Logger = logger.WithPrefix("content")
		}
		opts.Source, opts.Contact = src, src
		if cfg.Content.Watch {
			opts.Watcher = src
		}
		return opts
	}

	api := cfg.Content.APIURL
	if api == "" {
		api = config.DefaultAPIURL
	}
	src := content.NewHTTPSource(api)
	opts.Source, opts.Contact = src, src
	return opts
}
