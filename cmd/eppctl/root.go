package main

import (
	"bytes"
	"fmt"
	"io"
	"os"

	"github.com/danmuck/eppwire/internal/config"
	"github.com/danmuck/eppwire/internal/epp"
	"github.com/danmuck/eppwire/internal/observability"
	"github.com/danmuck/eppwire/internal/protocol/frame"
	"github.com/goccy/go-json"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

// app carries the state shared by every subcommand after flag parsing.
type app struct {
	in  io.Reader
	out io.Writer

	configPath string
	framed     bool
	output     string
	cfg        config.ClientConfig
}

func newRootCommand(in io.Reader, out io.Writer) *cobra.Command {
	a := &app{in: in, out: out}
	cmd := &cobra.Command{
		Use:   "eppctl",
		Short: "Encode and decode EPP documents",
		Long: `eppctl maps EPP XML documents to and from their JSON form.

Commands build client messages from the configured credentials, convert
documents in either direction and serve the same codec over HTTP.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			observability.InitLogger("eppctl")
			return a.load(cmd)
		},
	}

	cmd.PersistentFlags().StringVarP(&a.configPath, "config", "c", "", "path to eppctl TOML config")
	cmd.PersistentFlags().BoolVar(&a.framed, "framed", false, "read and write RFC 5734 length-prefixed frames")
	cmd.PersistentFlags().StringVarP(&a.output, "output", "o", "", "decoded output format: json|yaml")

	cmd.AddCommand(
		a.helloCommand(),
		a.loginCommand(),
		a.logoutCommand(),
		a.pollCommand(),
		a.checkCommand(),
		a.encodeCommand(),
		a.decodeCommand(),
		a.schemaCommand(),
		a.serveCommand(),
		a.configCommand(),
	)
	return cmd
}

func (a *app) load(cmd *cobra.Command) error {
	cfg, err := loadClientConfig(a.configPath)
	if err != nil {
		return err
	}
	if cmd.Flags().Changed("framed") {
		cfg.Framed = a.framed
	}
	if cmd.Flags().Changed("output") {
		cfg.Output = a.output
		if err := config.Validate(cfg); err != nil {
			return err
		}
	}
	a.cfg = cfg
	return nil
}

// readInput returns the bytes of the named file, or stdin for "-" or no
// argument.
func (a *app) readInput(args []string) ([]byte, error) {
	if len(args) == 0 || args[0] == "-" {
		return io.ReadAll(a.in)
	}
	return os.ReadFile(args[0])
}

// readDocument reads one XML document, unwrapping a frame when framed.
func (a *app) readDocument(args []string) ([]byte, error) {
	if len(args) == 0 || args[0] == "-" {
		if a.cfg.Framed {
			return frame.ReadFrame(a.in, frame.DefaultLimits())
		}
		return io.ReadAll(a.in)
	}
	data, err := os.ReadFile(args[0])
	if err != nil {
		return nil, err
	}
	if a.cfg.Framed {
		return frame.ReadFrame(bytes.NewReader(data), frame.DefaultLimits())
	}
	return data, nil
}

func (a *app) writeDocument(doc []byte) error {
	if a.cfg.Framed {
		return frame.WriteFrame(a.out, doc, frame.DefaultLimits())
	}
	if _, err := a.out.Write(doc); err != nil {
		return err
	}
	_, err := fmt.Fprintln(a.out)
	return err
}

func (a *app) emit(m *epp.Message) error {
	doc, err := epp.Encode(m)
	if err != nil {
		return fmt.Errorf("encode %s: %w", m.Detail(), err)
	}
	return a.writeDocument(doc)
}

// writeValue prints v in the configured output format. YAML goes through the
// JSON view so extension envelopes look the same in both.
func (a *app) writeValue(v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	if a.cfg.Output == config.OutputYAML {
		var generic any
		if err := json.Unmarshal(data, &generic); err != nil {
			return err
		}
		if data, err = yaml.Marshal(generic); err != nil {
			return err
		}
		_, err = a.out.Write(data)
		return err
	}
	_, err = fmt.Fprintf(a.out, "%s\n", data)
	return err
}
