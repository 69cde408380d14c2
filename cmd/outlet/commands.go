package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/spf13/pflag"

	"github.com/kbukum/ocdsoutlet/outlet/local"
	"github.com/kbukum/ocdsoutlet/outlet/minio"
	"github.com/kbukum/ocdsoutlet/outlet/s3"
	"github.com/kbukum/ocdsoutlet/render"
)

// command is one backend subcommand with its flags and config key bindings.
type command struct {
	name  string
	usage string
	flags *pflag.FlagSet
	keys  map[string]string
}

func newCommand(name, usage string) *command {
	fs := pflag.NewFlagSet(name, pflag.ContinueOnError)
	fs.SortFlags = false
	c := &command{name: name, usage: usage, flags: fs, keys: map[string]string{}}

	c.stringFlag("config", "", "config file (default: search ./cmd/outlet, ./config, .)", "")
	c.stringFlag("input", "i", "release package JSON file, - for stdin", "input")
	c.stringFlag("key-prefix", "", "prefix joined in front of the package uri", "outlet.key_prefix")
	c.stringFlag("renderer", "", "serialization format: "+strings.Join(render.Names(), ", "), "outlet.renderer")
	c.stringFlag("manifest", "", "write the manifest of uploaded URLs to this file", "packer.manifest_path")
	fs.Int("batch-size", 0, "releases per page, 0 writes a single page")
	c.keys["batch-size"] = "packer.batch_size"
	fs.Bool("fail-fast", false, "stop at the first failed upload")
	c.keys["fail-fast"] = "packer.fail_fast"
	return c
}

// stringFlag declares a string flag bound to key. An empty key leaves it unbound.
func (c *command) stringFlag(name, shorthand, usage, key string) {
	c.flags.StringP(name, shorthand, "", usage)
	if key != "" {
		c.keys[name] = key
	}
}

func commands() map[string]*command {
	s3Cmd := newCommand(s3.Backend, "upload to an S3 bucket")
	s3Cmd.stringFlag("bucket", "", "bucket name (required)", "s3.bucket")
	s3Cmd.stringFlag("aws-access-key", "", "access key id, default from the AWS environment", "s3.access_key")
	s3Cmd.stringFlag("aws-secret-key", "", "secret access key, default from the AWS environment", "s3.secret_key")
	s3Cmd.stringFlag("region", "", "bucket region", "s3.region")
	s3Cmd.stringFlag("endpoint", "", "S3-compatible endpoint URL", "s3.endpoint")

	minioCmd := newCommand(minio.Backend, "upload to an S3-compatible server")
	minioCmd.stringFlag("endpoint", "", "server host:port (required)", "minio.endpoint")
	minioCmd.stringFlag("bucket", "", "bucket name (required)", "minio.bucket")
	minioCmd.stringFlag("access-key", "", "access key, default from MINIO_ACCESS_KEY", "minio.access_key")
	minioCmd.stringFlag("secret-key", "", "secret key, default from MINIO_SECRET_KEY", "minio.secret_key")
	minioCmd.stringFlag("region", "", "bucket region", "minio.region")
	minioCmd.flags.Bool("use-ssl", false, "connect over TLS")
	minioCmd.keys["use-ssl"] = "minio.use_ssl"

	localCmd := newCommand(local.Backend, "write to a local directory")
	localCmd.stringFlag("base-path", "", "output directory (default "+local.DefaultBasePath+")", "local.base_path")

	return map[string]*command{
		s3Cmd.name:    s3Cmd,
		minioCmd.name: minioCmd,
		localCmd.name: localCmd,
	}
}

func usage(w io.Writer, cmds map[string]*command) {
	fmt.Fprintf(w, "Usage: outlet <command> [flags]\n\nCommands:\n")
	for _, name := range []string{s3.Backend, minio.Backend, local.Backend} {
		fmt.Fprintf(w, "  %-8s %s\n", name, cmds[name].usage)
	}
	fmt.Fprintf(w, "  %-8s %s\n\nRun 'outlet <command> --help' for command flags.\n", "version", "print build information")
}
