package main

import (
	"bufio"
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"os/signal"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
	"syscall"
	"time"

	"github.com/google/gops/agent"
	"github.com/viant/gist/service"
)

var stdout io.Writer = os.Stdout

func main() {
	startGops()
	if len(os.Args) < 2 {
		usage()
		os.Exit(2)
	}

	switch os.Args[1] {
	case "create":
		createCmd(os.Args[2:])
	case "get":
		getCmd(os.Args[2:])
	case "read":
		readCmd(os.Args[2:])
	case "write":
		editCmd(service.ModeWrite, os.Args[2:])
	case "append":
		editCmd(service.ModeAppend, os.Args[2:])
	case "prepend":
		editCmd(service.ModePrepend, os.Args[2:])
	case "clone":
		cloneCmd(os.Args[2:])
	case "push":
		pushCmd(os.Args[2:])
	case "serve":
		serveCmd(os.Args[2:])
	default:
		usage()
		os.Exit(2)
	}
}

func usage() {
	fmt.Fprintln(os.Stderr, "Usage: gist <command> [options]")
	fmt.Fprintln(os.Stderr, "Commands:")
	fmt.Fprintln(os.Stderr, "  create   Create a gist from files or directories")
	fmt.Fprintln(os.Stderr, "  get      Print a gist as JSON")
	fmt.Fprintln(os.Stderr, "  read     Print one gist file")
	fmt.Fprintln(os.Stderr, "  write    Replace a gist file")
	fmt.Fprintln(os.Stderr, "  append   Append to a gist file")
	fmt.Fprintln(os.Stderr, "  prepend  Prepend to a gist file")
	fmt.Fprintln(os.Stderr, "  clone    Download gist files into a folder")
	fmt.Fprintln(os.Stderr, "  push     Upload changed files of a folder into a gist")
	fmt.Fprintln(os.Stderr, "  serve    Run the MCP server exposing gist tools")
}

type commonFlags struct {
	configPath *string
	baseURL    *string
	token      *string
	user       *string
	password   *string
	debugSleep *int
}

func registerCommon(flags *flag.FlagSet) *commonFlags {
	return &commonFlags{
		configPath: flags.String("config", "", "config yaml (optional, defaults to ~/.gist/config.yaml if present)"),
		baseURL:    flags.String("base-url", "", "gist API collection URL (optional)"),
		token:      flags.String("token", "", "access token (optional, defaults to GITHUB_TOKEN)"),
		user:       flags.String("user", "", "basic auth user (optional)"),
		password:   flags.String("password", "", "basic auth password (optional)"),
		debugSleep: flags.Int("debug-sleep", 0, "debug: sleep N seconds before execution (for gops)"),
	}
}

func (c *commonFlags) config() *service.Config {
	path := resolveConfigPath(*c.configPath)
	if path == "" {
		return nil
	}
	cfg, err := service.LoadConfig(path)
	if err != nil {
		log.Fatalf("load config: %v", err)
	}
	return cfg
}

func (c *commonFlags) service(cfg *service.Config) *service.Service {
	opts := []service.Option{service.WithConfig(cfg), service.WithLogf(log.Printf)}
	if *c.baseURL != "" {
		opts = append(opts, service.WithBaseURL(*c.baseURL))
	}
	token := *c.token
	if token == "" && (cfg == nil || cfg.Auth.Token == "") {
		token = os.Getenv("GITHUB_TOKEN")
	}
	if token != "" {
		opts = append(opts, service.WithToken(token))
	}
	if *c.user != "" {
		opts = append(opts, service.WithBasicAuth(*c.user, *c.password))
	}
	svc, err := service.NewService(opts...)
	if err != nil {
		log.Fatalf("service init: %v", err)
	}
	return svc
}

func createCmd(args []string) {
	flags := flag.NewFlagSet("create", flag.ExitOnError)
	common := registerCommon(flags)
	desc := flags.String("desc", "", "gist description")
	public := flags.String("public", "", "create a public gist: true|false (default from config, else false)")
	name := flags.String("name", "", "inline file name (use with --content)")
	content := flags.String("content", "", "inline file content, '-' reads stdin")
	flags.Parse(args)

	paths := flags.Args()
	if len(paths) == 0 && *name == "" {
		flags.Usage()
		os.Exit(2)
	}
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()
	maybeDebugSleep("create", *common.debugSleep)

	cfg := common.config()
	req := service.CreateRequest{Description: *desc, Logf: log.Printf}
	if cfg != nil {
		req.Public = cfg.Defaults.Public
		if req.Description == "" {
			req.Description = cfg.Defaults.Description
		}
	}
	if *public != "" {
		v, err := strconv.ParseBool(*public)
		if err != nil {
			log.Fatalf("create: invalid --public: %v", err)
		}
		req.Public = v
	}
	for _, p := range paths {
		req.Paths = append(req.Paths, localURL(p))
	}
	if *name != "" {
		req.Files = map[string]string{*name: readContent(*content)}
	}
	snapshot, err := common.service(cfg).Create(ctx, req)
	if err != nil {
		log.Fatalf("create: %v", err)
	}
	fmt.Fprintf(stdout, "id=%s url=%s\n", snapshot.ID, snapshot.HTMLURL)
}

func getCmd(args []string) {
	flags := flag.NewFlagSet("get", flag.ExitOnError)
	common := registerCommon(flags)
	id := flags.String("id", "", "gist id (required)")
	flags.Parse(args)
	if *id == "" {
		flags.Usage()
		os.Exit(2)
	}
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()
	maybeDebugSleep("get", *common.debugSleep)

	snapshot, err := common.service(common.config()).Get(ctx, service.GetRequest{ID: *id})
	if err != nil {
		log.Fatalf("get: %v", err)
	}
	data, err := json.MarshalIndent(snapshot, "", "  ")
	if err != nil {
		log.Fatalf("get: %v", err)
	}
	fmt.Fprintln(stdout, string(data))
}

func readCmd(args []string) {
	flags := flag.NewFlagSet("read", flag.ExitOnError)
	common := registerCommon(flags)
	id := flags.String("id", "", "gist id (required)")
	filename := flags.String("file", "", "file name (required)")
	flags.Parse(args)
	if *id == "" || *filename == "" {
		flags.Usage()
		os.Exit(2)
	}
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()
	maybeDebugSleep("read", *common.debugSleep)

	content, err := common.service(common.config()).Read(ctx, service.ReadRequest{ID: *id, Filename: *filename})
	if err != nil {
		log.Fatalf("read: %v", err)
	}
	fmt.Fprint(stdout, content)
}

func editCmd(mode service.EditMode, args []string) {
	flags := flag.NewFlagSet(string(mode), flag.ExitOnError)
	common := registerCommon(flags)
	id := flags.String("id", "", "gist id (empty creates a new gist)")
	filename := flags.String("file", "", "file name (required)")
	content := flags.String("content", "", "content, '-' reads stdin")
	desc := flags.String("desc", "", "replace the gist description (optional)")
	flags.Parse(args)
	if *filename == "" {
		flags.Usage()
		os.Exit(2)
	}
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()
	maybeDebugSleep(string(mode), *common.debugSleep)

	cfg := common.config()
	req := service.EditRequest{
		ID:    *id,
		Edits: []service.Edit{{Filename: *filename, Content: readContent(*content), Mode: mode}},
		Logf:  log.Printf,
	}
	if *desc != "" {
		req.Description = desc
	}
	if cfg != nil && *id == "" {
		req.Public = cfg.Defaults.Public
	}
	snapshot, err := common.service(cfg).Edit(ctx, req)
	if err != nil {
		log.Fatalf("%s: %v", mode, err)
	}
	fmt.Fprintf(stdout, "id=%s url=%s\n", snapshot.ID, snapshot.HTMLURL)
}

func cloneCmd(args []string) {
	flags := flag.NewFlagSet("clone", flag.ExitOnError)
	common := registerCommon(flags)
	id := flags.String("id", "", "gist id (required)")
	dest := flags.String("dest", "", "destination folder (defaults to ./<id>)")
	flags.Parse(args)
	if *id == "" {
		flags.Usage()
		os.Exit(2)
	}
	if *dest == "" {
		*dest = *id
	}
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()
	maybeDebugSleep("clone", *common.debugSleep)

	written, err := common.service(common.config()).Clone(ctx, service.CloneRequest{ID: *id, Dest: localURL(*dest), Logf: log.Printf})
	if err != nil {
		log.Fatalf("clone: %v", err)
	}
	for _, URL := range written {
		fmt.Fprintln(stdout, URL)
	}
}

func pushCmd(args []string) {
	flags := flag.NewFlagSet("push", flag.ExitOnError)
	common := registerCommon(flags)
	id := flags.String("id", "", "gist id (optional when the folder was cloned or pushed before)")
	path := flags.String("path", ".", "folder or file to push")
	flags.Parse(args)
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()
	maybeDebugSleep("push", *common.debugSleep)

	result, err := common.service(common.config()).Push(ctx, service.PushRequest{ID: *id, Path: localURL(*path), Logf: log.Printf})
	if err != nil {
		log.Fatalf("push: %v", err)
	}
	sort.Strings(result.Changed)
	fmt.Fprintf(stdout, "id=%s changed=%s skipped=%d\n", result.ID, strings.Join(result.Changed, ","), len(result.Skipped))
}

// localURL turns plain paths into absolute file URLs; URLs with a scheme are kept.
func localURL(p string) string {
	if strings.Contains(p, "://") {
		return p
	}
	abs, err := filepath.Abs(p)
	if err != nil {
		return p
	}
	return "file://" + filepath.ToSlash(abs)
}

func readContent(value string) string {
	if value != "-" {
		return value
	}
	data, err := io.ReadAll(bufio.NewReader(os.Stdin))
	if err != nil {
		log.Fatalf("read stdin: %v", err)
	}
	return string(data)
}

func resolveConfigPath(flagPath string) string {
	if flagPath != "" {
		return flagPath
	}
	return service.DefaultConfigPath()
}

func maybeDebugSleep(cmd string, seconds int) {
	if seconds <= 0 {
		seconds = debugSleepFromEnv()
	}
	if seconds <= 0 {
		return
	}
	log.Printf("debug: cmd=%s pid=%d sleep=%ds", cmd, os.Getpid(), seconds)
	time.Sleep(time.Duration(seconds) * time.Second)
}

func startGops() {
	if err := agent.Listen(agent.Options{ShutdownCleanup: true}); err != nil {
		log.Printf("gops: %v", err)
	}
}

func debugSleepFromEnv() int {
	val := strings.TrimSpace(os.Getenv("GIST_DEBUG_SLEEP"))
	if val == "" {
		return 0
	}
	n, err := strconv.Atoi(val)
	if err != nil || n <= 0 {
		return 0
	}
	return n
}
