package main

import (
	"fmt"
	"time"

	"github.com/danmuck/eppwire/internal/config"
	"github.com/danmuck/eppwire/internal/epp"
	"github.com/danmuck/eppwire/internal/server"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

func (a *app) clTRID() string {
	return a.cfg.TransactionID(time.Now())
}

func (a *app) helloCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "hello",
		Short: "Print a hello document",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.emit(epp.NewHello())
		},
	}
}

func (a *app) loginCommand() *cobra.Command {
	var newPW string
	cmd := &cobra.Command{
		Use:   "login",
		Short: "Print a login command built from the config",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := config.ValidateLogin(a.cfg); err != nil {
				return err
			}
			m := epp.NewLogin(a.cfg.ClientID, a.cfg.Password, a.cfg.Version, a.cfg.Lang, a.clTRID())
			m.Command.Login.NewPW = newPW
			m.Command.Login.Svcs.ObjURIs = a.cfg.ObjURIs
			m.Command.Login.Svcs.ExtURIs = a.cfg.ExtURIs
			if err := epp.Validate(m); err != nil {
				return err
			}
			return a.emit(m)
		},
	}
	cmd.Flags().StringVar(&newPW, "new-password", "", "request a password change")
	return cmd
}

func (a *app) logoutCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Print a logout command",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.emit(epp.NewLogout(a.clTRID()))
		},
	}
}

func (a *app) pollCommand() *cobra.Command {
	var ack string
	cmd := &cobra.Command{
		Use:   "poll",
		Short: "Print a poll request, or an acknowledgement with --ack",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.emit(epp.NewPoll(ack, a.clTRID()))
		},
	}
	cmd.Flags().StringVar(&ack, "ack", "", "message id to acknowledge")
	return cmd
}

func (a *app) checkCommand() *cobra.Command {
	var contacts bool
	cmd := &cobra.Command{
		Use:   "check <name>...",
		Short: "Print a domain (or contact) availability check",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if contacts {
				return a.emit(epp.NewContactCheck(a.clTRID(), args...))
			}
			return a.emit(epp.NewDomainCheck(a.clTRID(), args...))
		},
	}
	cmd.Flags().BoolVar(&contacts, "contacts", false, "check contact ids instead of domain names")
	return cmd
}

func (a *app) encodeCommand() *cobra.Command {
	var validate bool
	cmd := &cobra.Command{
		Use:   "encode [file|-]",
		Short: "Encode the JSON form of a message as an EPP document",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := a.readInput(args)
			if err != nil {
				return err
			}
			m, err := epp.UnmarshalMessage(data)
			if err != nil {
				return err
			}
			if validate {
				if err := epp.Validate(m); err != nil {
					return err
				}
			}
			return a.emit(m)
		},
	}
	cmd.Flags().BoolVar(&validate, "validate", false, "check required command fields before encoding")
	return cmd
}

func (a *app) decodeCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "decode [file|-]",
		Short: "Decode an EPP document into its JSON or YAML form",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			doc, err := a.readDocument(args)
			if err != nil {
				return err
			}
			m, err := epp.Decode(doc)
			if err != nil {
				return fmt.Errorf("decode (%s): %w", epp.ErrorClass(err), err)
			}
			log.Debug().Str("kind", m.Detail()).Msg("decoded")
			return a.writeValue(m)
		},
	}
}

func (a *app) schemaCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "schema",
		Short: "Print the compiled binding descriptors",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.writeValue(epp.Schema().Describe())
		},
	}
}

func (a *app) serveCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the codec over HTTP",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if addr, _ := cmd.Flags().GetString("addr"); addr != "" {
				a.cfg.Gateway.Addr = addr
			}
			return server.New(a.cfg.Gateway).Serve()
		},
	}
	cmd.Flags().String("addr", "", "listen address (overrides gateway.addr)")
	return cmd
}

func (a *app) configCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Manage eppctl config files",
	}

	var kind string
	var force bool
	initCmd := &cobra.Command{
		Use:   "init <path>",
		Short: "Write a config template",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := config.WriteTemplate(args[0], kind, force); err != nil {
				return err
			}
			_, err := fmt.Fprintf(a.out, "wrote %s config template to %s\n", kind, args[0])
			return err
		},
	}
	initCmd.Flags().StringVar(&kind, "kind", "client", "template kind: client|gateway")
	initCmd.Flags().BoolVar(&force, "force", false, "overwrite an existing file")

	showCmd := &cobra.Command{
		Use:   "show",
		Short: "Print the effective config",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			out, err := config.Render(a.cfg)
			if err != nil {
				return err
			}
			_, err = fmt.Fprint(a.out, out)
			return err
		},
	}

	cmd.AddCommand(initCmd, showCmd)
	return cmd
}
