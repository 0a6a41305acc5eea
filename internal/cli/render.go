package cli

import (
	"github.com/rs/zerolog/log"
	"github.com/spf13/afero"
	"github.com/spf13/cobra"

	"github.com/arthur-debert/blocktext/pkg/config"
	"github.com/arthur-debert/blocktext/pkg/errors"
	"github.com/arthur-debert/blocktext/pkg/logging"
	"github.com/arthur-debert/blocktext/pkg/paths"
	"github.com/arthur-debert/blocktext/pkg/render/raw"
	"github.com/arthur-debert/blocktext/pkg/render/textrender"
	"github.com/arthur-debert/blocktext/pkg/script"
	"github.com/arthur-debert/blocktext/pkg/ui"
)

type renderFlags struct {
	width     int
	backend   string
	decorator string
	format    string
	config    string
}

func newRenderCmd(fs afero.Fs, verbosity *int) *cobra.Command {
	var flags renderFlags

	cmd := &cobra.Command{
		Use:     "render <script>",
		Short:   MsgRenderShort,
		Long:    MsgRenderLong,
		Example: MsgRenderExample,
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts, s, err := resolve(fs, args[0], flags, cmd.Flags().Changed)
			if err != nil {
				return err
			}
			if opts.Verbosity > *verbosity {
				logging.SetupLogger(opts.Verbosity)
			}

			log.Info().
				Str("script", args[0]).
				Int("width", opts.Width).
				Str("backend", opts.Backend).
				Str("format", opts.Format).
				Int("ops", len(s.Ops)).
				Msg("Rendering script")

			format, err := ui.ParseFormat(opts.Format)
			if err != nil {
				return err
			}
			out, err := ui.NewRenderer(format, cmd.OutOrStdout())
			if err != nil {
				return err
			}

			done := logging.Timed(log.Logger, "render")
			defer done()
			if err := run(out, opts, s); err != nil {
				if format.Structured() {
					_ = out.RenderError(err)
				}
				return err
			}
			return nil
		},
	}

	cmd.Flags().IntVarP(&flags.width, "width", "w", 0, MsgFlagWidth)
	cmd.Flags().StringVarP(&flags.backend, "backend", "b", "", MsgFlagBackend)
	cmd.Flags().StringVarP(&flags.decorator, "decorator", "d", "", MsgFlagDecorator)
	cmd.Flags().StringVarP(&flags.format, "format", "f", "", MsgFlagFormat)
	cmd.Flags().StringVarP(&flags.config, "config", "c", "", MsgFlagConfig)

	return cmd
}

// resolve loads the settings and the script. Explicit flags win over the
// script's own width and backend, which win over configuration. Without
// --config the user's config file is used when one exists.
func resolve(fs afero.Fs, path string, flags renderFlags, changed func(string) bool) (*config.Options, *script.Script, error) {
	overrides := map[string]interface{}{}
	if changed("width") {
		overrides["width"] = flags.width
	}
	if changed("backend") {
		overrides["backend"] = flags.backend
	}
	if changed("decorator") {
		overrides["decorator"] = flags.decorator
	}
	if changed("format") {
		overrides["format"] = flags.format
	}

	cfgFile := paths.ExpandHome(flags.config)
	if cfgFile == "" {
		if found, ok := paths.DefaultConfigFile(afero.NewOsFs()); ok {
			cfgFile = found
		}
	}
	opts, err := config.Load(config.Source{File: cfgFile, Overrides: overrides})
	if err != nil {
		return nil, nil, err
	}

	s, err := script.Load(fs, paths.ExpandHome(path))
	if err != nil {
		return nil, nil, err
	}

	if s.Width > 0 && !changed("width") {
		opts.Width = s.Width
	}
	if s.Backend != "" && !changed("backend") {
		opts.Backend = s.Backend
	}
	if err := opts.Validate(); err != nil {
		return nil, nil, err
	}
	return opts, s, nil
}

// run replays s on the configured backend and writes the result to out.
func run(out ui.Renderer, opts *config.Options, s *script.Script) error {
	switch opts.Backend {
	case config.BackendRaw:
		r, err := raw.NewWithWidth(opts.Width)
		if err != nil {
			return err
		}
		if err := script.Replay(r, s.Ops); err != nil {
			return err
		}
		text, err := r.Finalize()
		if err != nil {
			return err
		}
		return out.RenderText(text)

	case config.BackendText:
		deco, err := textrender.DecoratorByName(opts.Decorator)
		if err != nil {
			return err
		}
		r, err := textrender.New(opts.Width, textrender.WithDecorator(deco))
		if err != nil {
			return err
		}
		if err := script.Replay(r, s.Ops); err != nil {
			return err
		}
		doc, err := r.Document()
		if err != nil {
			return err
		}
		return out.RenderDocument(doc)

	default:
		return errors.Newf(errors.ErrConfigValid, "unknown backend %q", opts.Backend).
			WithDetail("key", "backend")
	}
}
