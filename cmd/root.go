// Package cmd implements the nubble command line.
package cmd

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"firestige.xyz/nubble/internal/config"
	"firestige.xyz/nubble/internal/install"
	"firestige.xyz/nubble/internal/log"
	"firestige.xyz/nubble/internal/source/iface"
)

type rootOptions struct {
	configPath  string
	iface       string
	readFile    string
	list        bool
	selectIface bool
	symlink     bool
}

// Replaced in tests.
var (
	listInterfaces  = iface.List
	selectInterface = iface.Select
	executable      = os.Executable
	symlinkPath     = install.DefaultLink
)

func newRootCmd() *cobra.Command {
	opts := &rootOptions{}
	cmd := &cobra.Command{
		Use:   "nubble",
		Short: "nubble - print live network traffic one frame at a time",
		Long: `nubble captures Ethernet frames on a network interface (or reads them from a
pcap file) and prints one summary line per frame, followed by a hex and an
ASCII dump of the network-layer payload for IPv4, IPv6 and ARP.

Examples:
  nubble -l                      # list interfaces
  nubble -i eth0                 # capture on eth0
  nubble -s                      # pick an interface interactively
  nubble -r capture.pcap         # decode a capture file
  sudo nubble --symlink          # install into /usr/local/bin`,
		Version:       "0.1.0",
		SilenceUsage:  true,
		SilenceErrors: true,
		Args:          cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runRoot(cmd, opts)
		},
	}

	cmd.PersistentFlags().StringVarP(&opts.configPath, "config", "c", "", "config file path")
	cmd.Flags().StringVarP(&opts.iface, "interface", "i", "", "name of the network interface to use")
	cmd.Flags().BoolVarP(&opts.selectIface, "select", "s", false, "select the network interface to use")
	cmd.Flags().BoolVarP(&opts.list, "list", "l", false, "list network interfaces")
	cmd.Flags().BoolVar(&opts.symlink, "symlink", false, "create a symlink in /usr/local/bin")
	cmd.Flags().StringVarP(&opts.readFile, "read", "r", "", "read frames from a pcap or pcapng file")

	cmd.AddCommand(newConfigCmd(opts))
	return cmd
}

func runRoot(cmd *cobra.Command, opts *rootOptions) error {
	cfg, err := loadConfig(opts)
	if err != nil {
		return err
	}
	if err := log.Init(cfg.Log); err != nil {
		return fmt.Errorf("failed to init logger: %w", err)
	}

	out := cmd.OutOrStdout()
	switch {
	case opts.list:
		ifaces, err := listInterfaces()
		if err != nil {
			return err
		}
		return iface.Print(out, ifaces)

	case opts.selectIface:
		name, err := selectInterface(cmd.InOrStdin(), out)
		if err != nil {
			return err
		}
		cfg.Capture.Interface = name
		cfg.Capture.ReadFile = ""
		return runCapture(cmd.Context(), cfg, out)

	case cfg.Capture.ReadFile != "" || cfg.Capture.Interface != "":
		return runCapture(cmd.Context(), cfg, out)

	case opts.symlink:
		return runSymlink(out)

	default:
		return cmd.Help()
	}
}

// loadConfig loads the config file and applies flag overrides.
func loadConfig(opts *rootOptions) (*config.GlobalConfig, error) {
	cfg, err := config.Load(opts.configPath)
	if err != nil {
		return nil, err
	}
	if opts.iface != "" {
		cfg.Capture.Interface = opts.iface
	}
	if opts.readFile != "" {
		cfg.Capture.ReadFile = opts.readFile
	}
	return cfg, nil
}

func runSymlink(out io.Writer) error {
	target, err := executable()
	if err != nil {
		return fmt.Errorf("failed to get current executable: %w", err)
	}
	if err := install.Symlink(target, symlinkPath); err != nil {
		return err
	}
	_, err = fmt.Fprintf(out, "Created symlink at %s\n", symlinkPath)
	return err
}

// Execute runs the root command. SIGINT and SIGTERM cancel the capture.
func Execute() error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	defer log.Close()

	if err := newRootCmd().ExecuteContext(ctx); err != nil {
		log.GetLogger().WithError(err).Error("nubble exited with error")
		return err
	}
	return nil
}
