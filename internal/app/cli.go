package app

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/appdeck-hq/appdeck-client/internal/config"
	"github.com/appdeck-hq/appdeck-client/internal/logger"
	"github.com/appdeck-hq/appdeck-client/internal/profiles"
	"github.com/appdeck-hq/appdeck-client/pkg/backend"
)

// CLI wires config, logging, and the backend client behind the appdeckctl
// subcommands. Every subcommand resolves a target host (directly via -host or
// through a named profile), builds a client, and runs exactly one operation.
type CLI struct {
	cfg *config.Config
	log logger.Logger
	out io.Writer
}

// New builds the CLI runtime.
func New(cfg *config.Config, log logger.Logger) (*CLI, error) {
	if cfg == nil {
		return nil, fmt.Errorf("config must not be nil")
	}
	if log == nil {
		log = &logger.NopLogger{}
	}
	return &CLI{cfg: cfg, log: log, out: os.Stdout}, nil
}

var commands = []string{
	"app-get", "app-create",
	"variant-list", "variant-add", "variant-start", "variant-stop", "variant-remove",
	"image-update", "build",
}

// Run dispatches a single subcommand.
func (c *CLI) Run(ctx context.Context, args []string) error {
	if len(args) == 0 {
		return fmt.Errorf("usage: appdeckctl <command> [flags]\ncommands: %s", strings.Join(commands, ", "))
	}

	cmd, rest := args[0], args[1:]
	switch cmd {
	case "app-get":
		return c.appGet(ctx, rest)
	case "app-create":
		return c.appCreate(ctx, rest)
	case "variant-list":
		return c.variantList(ctx, rest)
	case "variant-add":
		return c.variantAdd(ctx, rest)
	case "variant-start":
		return c.variantStart(ctx, rest)
	case "variant-stop":
		return c.variantStop(ctx, rest)
	case "variant-remove":
		return c.variantRemove(ctx, rest)
	case "image-update":
		return c.imageUpdate(ctx, rest)
	case "build":
		return c.build(ctx, rest)
	default:
		return fmt.Errorf("unknown command %q (commands: %s)", cmd, strings.Join(commands, ", "))
	}
}

// target carries the host-selection flags shared by every subcommand.
type target struct {
	host    *string
	profile *string
}

func bindTarget(fs *flag.FlagSet) target {
	return target{
		host:    fs.String("host", "", "backend host URL"),
		profile: fs.String("profile", "", "named profile from the profiles file"),
	}
}

func (c *CLI) resolveHost(t target) (string, error) {
	if host := strings.TrimSpace(*t.host); host != "" {
		return host, nil
	}
	if name := strings.TrimSpace(*t.profile); name != "" {
		reg, err := profiles.Load(c.cfg.ProfilesFile)
		if err != nil {
			return "", fmt.Errorf("load profiles: %w", err)
		}
		return reg.HostFor(name)
	}
	return "", fmt.Errorf("either -host or -profile is required")
}

func (c *CLI) clientFor(t target) (*backend.Client, error) {
	host, err := c.resolveHost(t)
	if err != nil {
		return nil, err
	}
	return backend.New(host, backend.Options{
		URLSuffix:      c.cfg.BackendURLSuffix,
		RequestTimeout: c.cfg.RequestTimeout,
		UploadTimeout:  c.cfg.UploadTimeout,
		Log:            c.log,
	})
}

func (c *CLI) appGet(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("app-get", flag.ContinueOnError)
	t := bindTarget(fs)
	name := fs.String("name", "", "app name to resolve")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *name == "" {
		return fmt.Errorf("app-get: -name is required")
	}

	client, err := c.clientFor(t)
	if err != nil {
		return err
	}
	id, err := client.GetAppByName(ctx, *name)
	if err != nil {
		return err
	}
	fmt.Fprintln(c.out, id)
	return nil
}

func (c *CLI) appCreate(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("app-create", flag.ContinueOnError)
	t := bindTarget(fs)
	name := fs.String("name", "", "name for the new app")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *name == "" {
		return fmt.Errorf("app-create: -name is required")
	}

	client, err := c.clientFor(t)
	if err != nil {
		return err
	}
	id, err := client.CreateApp(ctx, *name)
	if err != nil {
		return err
	}
	c.log.Infow("app created", "app_id", id, "app_name", *name)
	fmt.Fprintln(c.out, id)
	return nil
}

func (c *CLI) variantList(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("variant-list", flag.ContinueOnError)
	t := bindTarget(fs)
	appID := fs.String("app", "", "app id")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *appID == "" {
		return fmt.Errorf("variant-list: -app is required")
	}

	client, err := c.clientFor(t)
	if err != nil {
		return err
	}
	variants, err := client.ListVariants(ctx, *appID)
	if err != nil {
		return err
	}
	for _, v := range variants {
		fmt.Fprintf(c.out, "%s\t%s\n", v.VariantID, v.VariantName)
	}
	return nil
}

func (c *CLI) variantAdd(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("variant-add", flag.ContinueOnError)
	t := bindTarget(fs)
	appID := fs.String("app", "", "app id")
	name := fs.String("name", "", "variant name")
	dockerID := fs.String("docker-id", "", "image docker id")
	tags := fs.String("tags", "", "image tags")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *appID == "" || *name == "" || *dockerID == "" {
		return fmt.Errorf("variant-add: -app, -name and -docker-id are required")
	}

	client, err := c.clientFor(t)
	if err != nil {
		return err
	}
	record, err := client.AddVariantFromImage(ctx, *appID, *name, backend.Image{DockerID: *dockerID, Tags: *tags})
	if err != nil {
		return err
	}
	return printJSON(c.out, record)
}

// envFlag collects repeatable -env KEY=VALUE flags.
type envFlag map[string]string

func (e envFlag) String() string {
	pairs := make([]string, 0, len(e))
	for k, v := range e {
		pairs = append(pairs, k+"="+v)
	}
	return strings.Join(pairs, ",")
}

func (e envFlag) Set(value string) error {
	key, val, ok := strings.Cut(value, "=")
	if !ok || strings.TrimSpace(key) == "" {
		return fmt.Errorf("env vars must be KEY=VALUE, got %q", value)
	}
	e[key] = val
	return nil
}

func (c *CLI) variantStart(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("variant-start", flag.ContinueOnError)
	t := bindTarget(fs)
	id := fs.String("id", "", "variant id")
	env := envFlag{}
	fs.Var(env, "env", "environment variable KEY=VALUE (repeatable)")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *id == "" {
		return fmt.Errorf("variant-start: -id is required")
	}

	client, err := c.clientFor(t)
	if err != nil {
		return err
	}
	uri, err := client.StartVariant(ctx, *id, env)
	if err != nil {
		return err
	}
	c.log.Infow("variant started", "variant_id", *id, "uri", uri)
	fmt.Fprintln(c.out, uri)
	return nil
}

func (c *CLI) variantStop(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("variant-stop", flag.ContinueOnError)
	t := bindTarget(fs)
	id := fs.String("id", "", "variant id")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *id == "" {
		return fmt.Errorf("variant-stop: -id is required")
	}

	client, err := c.clientFor(t)
	if err != nil {
		return err
	}
	return client.StopVariant(ctx, *id)
}

func (c *CLI) variantRemove(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("variant-remove", flag.ContinueOnError)
	t := bindTarget(fs)
	id := fs.String("id", "", "variant id")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *id == "" {
		return fmt.Errorf("variant-remove: -id is required")
	}

	client, err := c.clientFor(t)
	if err != nil {
		return err
	}
	if err := client.RemoveVariant(ctx, *id); err != nil {
		return err
	}
	c.log.Infow("variant removed", "variant_id", *id)
	return nil
}

func (c *CLI) imageUpdate(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("image-update", flag.ContinueOnError)
	t := bindTarget(fs)
	id := fs.String("id", "", "variant id")
	dockerID := fs.String("docker-id", "", "image docker id")
	tags := fs.String("tags", "", "image tags")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *id == "" || *dockerID == "" {
		return fmt.Errorf("image-update: -id and -docker-id are required")
	}

	client, err := c.clientFor(t)
	if err != nil {
		return err
	}
	return client.UpdateVariantImage(ctx, *id, backend.Image{DockerID: *dockerID, Tags: *tags})
}

func (c *CLI) build(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("build", flag.ContinueOnError)
	t := bindTarget(fs)
	appID := fs.String("app", "", "app id")
	name := fs.String("name", "", "variant name")
	tar := fs.String("tar", "", "path to the build-context tar archive")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *appID == "" || *name == "" || *tar == "" {
		return fmt.Errorf("build: -app, -name and -tar are required")
	}

	client, err := c.clientFor(t)
	if err != nil {
		return err
	}
	img, err := client.SendDockerTar(ctx, *appID, *name, *tar)
	if err != nil {
		return err
	}
	c.log.Infow("image built", "docker_id", img.DockerID, "tags", img.Tags)
	return printJSON(c.out, img)
}

func printJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
