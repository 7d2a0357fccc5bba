// Package main provides the entry point for the Sonic CLI application.
package main

import (
	"fmt"
	"io"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	"github.com/dustin/go-humanize"
	gap "github.com/muesli/go-app-paths"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/SurajVarmaAvulamanda/Sonic-AI/speech"
	"github.com/SurajVarmaAvulamanda/Sonic-AI/speech/export"
	"github.com/SurajVarmaAvulamanda/Sonic-AI/speech/playback"
)

var (
	// Version as provided by goreleaser.
	Version = ""
	// CommitSHA as provided by goreleaser.
	CommitSHA = ""

	configFile   string
	voiceLabel   string
	language     string
	sourceText   string
	multiSpeaker bool
	mute         bool
	outputDir    string
	filePrefix   string

	rootCmd = &cobra.Command{
		Use:   "sonic",
		Short: "Play and export AI-narrated audio on the CLI",
		Long: paragraph(
			fmt.Sprintf("\nDecode synthesized speech payloads, %s them through the system audio device, and export portable WAV files.", keyword("play")),
		),
		SilenceErrors:    false,
		SilenceUsage:     true,
		TraverseChildren: true,
	}
)

// session wires the per-invocation vault, playback engine and export writer.
// The vault lives for exactly one CLI run; nothing persists afterwards.
type session struct {
	vault  *speech.Vault
	engine *playback.Engine
	writer *export.Writer
}

func newSession() *session {
	cfg := playback.Config{SampleRate: speech.SampleRate, Channels: speech.Channels}
	if mute {
		// Muted runs schedule everything on the silent device so timing
		// and exclusivity behave exactly like audible playback.
		cfg.NewDevice = func(rate, channels int) (playback.Device, error) {
			return playback.NewMockDevice(rate, channels), nil
		}
	}

	engine := playback.NewEngine(cfg)
	vault := speech.NewVault()
	vault.SetStopper(engine)

	return &session{
		vault:  vault,
		engine: engine,
		writer: &export.Writer{Prefix: filePrefix},
	}
}

// load reads one base64 payload file (or stdin via "-") and records it in
// the vault as a fresh artifact.
func (s *session) load(arg string) (*speech.Artifact, error) {
	var (
		raw []byte
		err error
	)
	if arg == "-" {
		raw, err = io.ReadAll(os.Stdin)
	} else {
		raw, err = os.ReadFile(arg)
	}
	if err != nil {
		return nil, fmt.Errorf("unable to read payload: %w", err)
	}

	// Payload files may be line-wrapped; the codec wants one token.
	payload := strings.Join(strings.Fields(string(raw)), "")

	kind := speech.KindSingleSpeaker
	if multiSpeaker {
		kind = speech.KindMultiSpeaker
	}

	label := voiceLabel
	if label == "" {
		label = strings.TrimSuffix(filepath.Base(arg), filepath.Ext(arg))
	}

	text := sourceText
	if text == "" {
		text = label
	}

	artifact := speech.NewArtifact(text, label, kind, language, knobSnapshot(), payload)
	s.vault.Add(artifact)

	log.Debug("artifact recorded",
		"id", artifact.ID,
		"kind", artifact.Kind,
		"voice", artifact.VoiceLabel,
		"payload_bytes", len(payload))

	return artifact, nil
}

// knobSnapshot copies the configured synthesis knobs so each artifact keeps
// the values in effect at its creation time.
func knobSnapshot() speech.SynthesisParams {
	return speech.SynthesisParams{
		Rate:           viper.GetFloat64("knobs.rate"),
		Volume:         viper.GetFloat64("knobs.volume"),
		Pitch:          viper.GetFloat64("knobs.pitch"),
		PauseIntensity: viper.GetFloat64("knobs.pause_intensity"),
		Naturalness:    viper.GetFloat64("knobs.naturalness"),
		Stability:      viper.GetFloat64("knobs.stability"),
		Clarity:        viper.GetFloat64("knobs.clarity"),
	}
}

var playCmd = &cobra.Command{
	Use:     "play FILE...",
	Short:   "Play synthesized payload files in order",
	Example: paragraph("sonic play narration.b64\nsonic play --voice 'Kore (bright)' dialogue.b64\ncat narration.b64 | sonic play -"),
	Args:    cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		s := newSession()
		defer s.engine.StopAll()

		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
		defer stop()

		for _, arg := range args {
			artifact, err := s.load(arg)
			if err != nil {
				return err
			}

			handle, err := s.engine.PlayArtifact(artifact)
			if err != nil {
				return fmt.Errorf("unable to play %s: %w", arg, err)
			}

			log.Info("playing",
				"file", arg,
				"voice", artifact.VoiceLabel,
				"duration", artifact.Duration().Round(10*time.Millisecond))

			select {
			case <-handle.Done():
			case <-ctx.Done():
				handle.Stop()
				log.Info("playback interrupted")
				return nil
			}
		}
		return nil
	},
}

var exportCmd = &cobra.Command{
	Use:     "export FILE...",
	Short:   "Export payload files as WAV containers",
	Example: paragraph("sonic export narration.b64\nsonic export --output ~/audio --prefix dialogue one.b64 two.b64"),
	Args:    cobra.MinimumNArgs(1),
	RunE: func(_ *cobra.Command, args []string) error {
		s := newSession()

		if err := os.MkdirAll(outputDir, 0o755); err != nil {
			return fmt.Errorf("unable to create output directory: %w", err)
		}

		for _, arg := range args {
			artifact, err := s.load(arg)
			if err != nil {
				return err
			}

			path, err := s.writer.Save(artifact, outputDir)
			if err != nil {
				return fmt.Errorf("unable to export %s: %w", arg, err)
			}

			info, err := os.Stat(path)
			if err != nil {
				return fmt.Errorf("unable to stat exported file: %w", err)
			}

			log.Info("exported",
				"file", arg,
				"path", path,
				"size", humanize.Bytes(uint64(info.Size())))
		}
		return nil
	},
}

var listCmd = &cobra.Command{
	Use:   "list FILE...",
	Short: "Show payload files as a newest-first session vault",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(_ *cobra.Command, args []string) error {
		s := newSession()

		for _, arg := range args {
			if _, err := s.load(arg); err != nil {
				return err
			}
		}

		for _, a := range s.vault.List() {
			fmt.Printf("%-8s  %-14s  %-20s  %-12s  %s\n",
				a.ID[:8],
				a.Kind,
				a.VoiceLabel,
				humanize.Time(a.CreatedAt),
				a.DisplayText(48))
		}
		return nil
	},
}

func main() {
	closer, err := setupLog()
	if err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
	if err := rootCmd.Execute(); err != nil {
		_ = closer()
		os.Exit(1)
	}
	_ = closer()
}

func init() {
	tryLoadConfigFromDefaultPlaces()
	if len(CommitSHA) >= 7 {
		vt := rootCmd.VersionTemplate()
		rootCmd.SetVersionTemplate(vt[:len(vt)-1] + " (" + CommitSHA[0:7] + ")\n")
	}
	if Version == "" {
		Version = "unknown (built from source)"
	}
	rootCmd.Version = Version
	rootCmd.InitDefaultCompletionCmd()

	rootCmd.PersistentFlags().StringVar(&configFile, "config", "", fmt.Sprintf("config file (default %s)", viper.GetViper().ConfigFileUsed()))
	rootCmd.PersistentFlags().StringVar(&voiceLabel, "voice", "", "voice or mood label recorded on the artifact")
	rootCmd.PersistentFlags().StringVar(&language, "lang", "", "language tag recorded on the artifact")
	rootCmd.PersistentFlags().StringVar(&sourceText, "text", "", "source text recorded on the artifact")
	rootCmd.PersistentFlags().BoolVar(&multiSpeaker, "multi", false, "mark artifacts as multi-speaker dialogue")
	rootCmd.PersistentFlags().BoolVar(&mute, "mute", false, "use the silent device (no audible output)")
	exportCmd.Flags().StringVarP(&outputDir, "output", "o", ".", "directory for exported WAV files")
	exportCmd.Flags().StringVar(&filePrefix, "prefix", export.DefaultPrefix, "leading token of exported filenames")

	// Config bindings
	_ = viper.BindPFlag("voice", rootCmd.PersistentFlags().Lookup("voice"))
	_ = viper.BindPFlag("language", rootCmd.PersistentFlags().Lookup("lang"))
	_ = viper.BindPFlag("mute", rootCmd.PersistentFlags().Lookup("mute"))
	_ = viper.BindPFlag("output", exportCmd.Flags().Lookup("output"))
	_ = viper.BindPFlag("prefix", exportCmd.Flags().Lookup("prefix"))

	viper.SetDefault("language", "en-US")
	viper.SetDefault("output", ".")
	viper.SetDefault("prefix", export.DefaultPrefix)
	viper.SetDefault("knobs.rate", 1.0)
	viper.SetDefault("knobs.volume", 1.0)
	viper.SetDefault("knobs.pitch", 0.0)
	viper.SetDefault("knobs.pause_intensity", 0.5)
	viper.SetDefault("knobs.naturalness", 0.7)
	viper.SetDefault("knobs.stability", 0.6)
	viper.SetDefault("knobs.clarity", 0.8)

	rootCmd.AddCommand(playCmd, exportCmd, listCmd, configCmd)

	cobra.OnInitialize(func() {
		if voiceLabel == "" {
			voiceLabel = viper.GetString("voice")
		}
		if language == "" {
			language = viper.GetString("language")
		}
		if !mute {
			mute = viper.GetBool("mute")
		}
	})
}

func tryLoadConfigFromDefaultPlaces() {
	scope := gap.NewScope(gap.User, "sonic")
	dirs, err := scope.ConfigDirs()
	if err != nil {
		fmt.Println("Could not find configuration directory.")
		os.Exit(1)
	}

	if c := os.Getenv("XDG_CONFIG_HOME"); c != "" {
		dirs = append([]string{filepath.Join(c, "sonic")}, dirs...)
	}

	if c := os.Getenv("SONIC_CONFIG_HOME"); c != "" {
		dirs = append([]string{c}, dirs...)
	}

	for _, v := range dirs {
		viper.AddConfigPath(v)
	}

	viper.SetConfigName("sonic")
	viper.SetConfigType("yaml")
	viper.SetEnvPrefix("sonic")
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			log.Warn("Could not parse configuration file", "err", err)
		}
	}

	if used := viper.ConfigFileUsed(); used != "" {
		log.Debug("Using configuration file", "path", viper.ConfigFileUsed())
		return
	}

	if viper.ConfigFileUsed() == "" {
		configFile = filepath.Join(dirs[0], "sonic.yml")
	}
	if err := ensureConfigFile(); err != nil {
		log.Error("Could not create default configuration", "error", err)
	}
}
