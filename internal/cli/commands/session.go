package commands

import (
	"context"
	"flag"
	"fmt"
	"time"

	"BwClient/internal/config"
)

type unlockCmd struct{}

func (unlockCmd) Name() string        { return "unlock" }
func (unlockCmd) Description() string { return "Unlock the vault (BW_PASSWORD or prompt)" }
func (unlockCmd) Usage() string       { return "unlock [-raw]" }

func (unlockCmd) Run(ctx context.Context, cfg *config.Config, args []string) error {
	fs := flag.NewFlagSet("unlock", flag.ContinueOnError)
	raw := fs.Bool("raw", false, "print only the session key")
	if err := parseFlags(fs, args); err != nil || fs.NArg() != 0 {
		return ErrUsage
	}

	password := cfg.Password
	if password.IsZero() {
		var err error
		if password, err = readPassword("Master password: "); err != nil {
			return err
		}
	}

	c, err := newClient(cfg)
	if err != nil {
		return err
	}
	key, err := c.Unlock(ctx, password)
	if err != nil {
		return err
	}
	if *raw {
		fmt.Fprintln(Out, key.Reveal())
		return nil
	}
	fmt.Fprintln(Out, "Vault unlocked.")
	return nil
}

type lockCmd struct{}

func (lockCmd) Name() string        { return "lock" }
func (lockCmd) Description() string { return "Lock the vault" }
func (lockCmd) Usage() string       { return "lock" }

func (lockCmd) Run(ctx context.Context, cfg *config.Config, args []string) error {
	if len(args) != 0 {
		return ErrUsage
	}
	c, err := newClient(cfg)
	if err != nil {
		return err
	}
	if err := c.Lock(ctx); err != nil {
		return err
	}
	fmt.Fprintln(Out, "Vault locked.")
	return nil
}

type syncCmd struct{}

func (syncCmd) Name() string        { return "sync" }
func (syncCmd) Description() string { return "Pull the vault from the server" }
func (syncCmd) Usage() string       { return "sync" }

func (syncCmd) Run(ctx context.Context, cfg *config.Config, args []string) error {
	if len(args) != 0 {
		return ErrUsage
	}
	c, err := newClient(cfg)
	if err != nil {
		return err
	}
	if err := c.Sync(ctx); err != nil {
		return err
	}
	fmt.Fprintln(Out, "Sync complete.")
	return nil
}

type statusCmd struct{}

func (statusCmd) Name() string        { return "status" }
func (statusCmd) Description() string { return "Show lock state and account" }
func (statusCmd) Usage() string       { return "status" }

func (statusCmd) Run(ctx context.Context, cfg *config.Config, args []string) error {
	if len(args) != 0 {
		return ErrUsage
	}
	c, err := newClient(cfg)
	if err != nil {
		return err
	}
	st, err := c.Status(ctx)
	if err != nil {
		return err
	}
	server := "-"
	if st.ServerURL != nil {
		server = *st.ServerURL
	}
	lastSync := "never"
	if !st.LastSync.IsZero() {
		lastSync = st.LastSync.Format(time.RFC3339)
	}
	fmt.Fprintf(Out, "status:    %s\n", st.Status)
	fmt.Fprintf(Out, "server:    %s\n", server)
	fmt.Fprintf(Out, "user:      %s (%s)\n", st.UserEmail, st.UserID)
	fmt.Fprintf(Out, "last sync: %s\n", lastSync)
	return nil
}

type fingerprintCmd struct{}

func (fingerprintCmd) Name() string        { return "fingerprint" }
func (fingerprintCmd) Description() string { return "Show the account fingerprint phrase" }
func (fingerprintCmd) Usage() string       { return "fingerprint" }

func (fingerprintCmd) Run(ctx context.Context, cfg *config.Config, args []string) error {
	if len(args) != 0 {
		return ErrUsage
	}
	c, err := newClient(cfg)
	if err != nil {
		return err
	}
	fp, err := c.Fingerprint(ctx)
	if err != nil {
		return err
	}
	fmt.Fprintln(Out, fp)
	return nil
}

func init() {
	RegisterCmd(unlockCmd{})
	RegisterCmd(lockCmd{})
	RegisterCmd(syncCmd{})
	RegisterCmd(statusCmd{})
	RegisterCmd(fingerprintCmd{})
}
