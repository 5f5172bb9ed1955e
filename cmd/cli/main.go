package main

import (
	"bufio"
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	_ "github.com/joho/godotenv/autoload"

	"github.com/nickyhof/DirDB"
	"github.com/nickyhof/DirDB/core"
	"github.com/nickyhof/DirDB/db"
	"github.com/nickyhof/DirDB/ps"
	"github.com/nickyhof/DirDB/sql"
)

const (
	PromptColor  = "\033[36m" // Cyan
	ErrorColor   = "\033[31m" // Red
	SuccessColor = "\033[32m" // Green
	ResetColor   = "\033[0m"
	BoldColor    = "\033[1m"
)

// Version is set at build time via -ldflags
var Version = "dev"

const historyLimit = 1000

// options holds the command line configuration. Defaults come from the
// environment, which may be populated from a .env file.
type options struct {
	baseDir    string
	journal    bool
	userName   string
	userEmail  string
	sqlFile    string
	output     string
	s3Region   string
	s3Endpoint string
	pretty     bool
	showLog    bool
	version    bool
}

// CLI holds the CLI state
type CLI struct {
	engine      *db.Engine
	out         io.Writer
	history     []string
	historyFile string
	interactive bool
}

func main() {
	os.Exit(run(os.Args[1:], os.Stdin, os.Stdout, os.Stderr))
}

func defaultBaseDir() string {
	if root := os.Getenv("DIRDB_ROOT"); root != "" {
		return root
	}
	cwd, err := os.Getwd()
	if err != nil {
		return "DatabaseSystem"
	}
	return filepath.Join(cwd, "DatabaseSystem")
}

func envOr(key string, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

func envBool(key string) bool {
	value, err := strconv.ParseBool(os.Getenv(key))
	return err == nil && value
}

func parseOptions(args []string, stderr io.Writer) (options, error) {
	var opts options

	fs := flag.NewFlagSet("dirdb", flag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.StringVar(&opts.baseDir, "baseDir", defaultBaseDir(), "Storage root holding one directory per database")
	fs.BoolVar(&opts.journal, "journal", envBool("DIRDB_JOURNAL"), "Commit every change to a Git journal in the storage root")
	fs.StringVar(&opts.userName, "name", envOr("DIRDB_AUTHOR_NAME", "DirDB"), "User name for journal commits")
	fs.StringVar(&opts.userEmail, "email", envOr("DIRDB_AUTHOR_EMAIL", "cli@dirdb.local"), "User email for journal commits")
	fs.StringVar(&opts.sqlFile, "sqlFile", "", "Script to execute instead of standard input (path, file://, http(s):// or s3://)")
	fs.StringVar(&opts.output, "output", "", "Also write the transcript to this path, file:// or s3:// location")
	fs.StringVar(&opts.s3Region, "s3Region", os.Getenv("AWS_REGION"), "AWS region for s3:// locations")
	fs.StringVar(&opts.s3Endpoint, "s3Endpoint", os.Getenv("DIRDB_S3_ENDPOINT"), "Custom S3-compatible endpoint")
	fs.BoolVar(&opts.pretty, "pretty", false, "Render query results as a grid")
	fs.BoolVar(&opts.showLog, "log", false, "Print the journal and exit")
	fs.BoolVar(&opts.version, "version", false, "Print the version and exit")

	if err := fs.Parse(args); err != nil {
		return options{}, err
	}
	return opts, nil
}

func (opts options) objectStore() *db.ObjectStore {
	return &db.ObjectStore{
		Region:    opts.s3Region,
		Endpoint:  opts.s3Endpoint,
		AccessKey: os.Getenv("AWS_ACCESS_KEY_ID"),
		SecretKey: os.Getenv("AWS_SECRET_ACCESS_KEY"),
	}
}

func run(args []string, stdin io.Reader, stdout io.Writer, stderr io.Writer) int {
	opts, err := parseOptions(args, stderr)
	if err != nil {
		return 2
	}

	if opts.version {
		fmt.Fprintf(stdout, "DirDB version %s\n", Version)
		return 0
	}

	if opts.showLog && !hasJournal(opts.baseDir) {
		fmt.Fprintln(stdout, "Journal is disabled (start with -journal)")
		return 0
	}

	var persistenceOpts []ps.Option
	if opts.journal || opts.showLog {
		persistenceOpts = append(persistenceOpts, ps.WithJournal())
	}

	persistence, err := ps.NewFilePersistence(opts.baseDir, persistenceOpts...)
	if err != nil {
		fmt.Fprintf(stderr, "Error: failed to open %s: %v\n", opts.baseDir, err)
		return 1
	}

	if opts.showLog {
		printLog(stdout, &persistence)
		return 0
	}

	ctx := context.Background()
	store := opts.objectStore()

	in := stdin
	if opts.sqlFile != "" {
		script, err := db.OpenScript(ctx, opts.sqlFile, store)
		if err != nil {
			fmt.Fprintf(stderr, "Error: failed to open script: %v\n", err)
			return 1
		}
		defer script.Close()
		in = script
	}

	out := stdout
	var transcript io.WriteCloser
	if opts.output != "" {
		transcript, err = db.CreateTranscript(ctx, opts.output, store)
		if err != nil {
			fmt.Fprintf(stderr, "Error: failed to create transcript: %v\n", err)
			return 1
		}
		out = io.MultiWriter(stdout, transcript)
	}

	instance := DirDB.Open(&persistence)
	engine := instance.Engine(core.Identity{
		Name:  opts.userName,
		Email: opts.userEmail,
	})
	engine.Pretty = opts.pretty

	cli := &CLI{
		engine:      engine,
		out:         out,
		history:     make([]string, 0),
		historyFile: getHistoryPath(),
		interactive: opts.sqlFile == "" && isTerminal(stdin),
	}

	status := 0
	if err := cli.run(in); err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		status = 1
	}

	if transcript != nil {
		if err := transcript.Close(); err != nil {
			fmt.Fprintf(stderr, "Error: failed to save transcript: %v\n", err)
			status = 1
		}
	}

	return status
}

// hasJournal reports whether a journal was already started under baseDir.
// Opening with ps.WithJournal would otherwise create one.
func hasJournal(baseDir string) bool {
	info, err := os.Stat(filepath.Join(baseDir, ps.JournalDir))
	return err == nil && info.IsDir()
}

// isTerminal reports whether r is an interactive terminal
func isTerminal(r io.Reader) bool {
	file, ok := r.(*os.File)
	if !ok {
		return false
	}
	info, err := file.Stat()
	if err != nil {
		return false
	}
	return info.Mode()&os.ModeCharDevice != 0
}

func (cli *CLI) run(in io.Reader) error {
	reader := sql.NewReader(in)

	if cli.interactive {
		cli.loadHistory()
		defer cli.saveHistory()

		printBanner(cli.out)
		reader.Prompt = cli.prompt
		reader.Command = cli.handleCommand
	}

	return DirDB.Run(cli, reader, cli.out)
}

// Dispatch records the statement in the history before executing it
func (cli *CLI) Dispatch(w io.Writer, statement string) bool {
	if cli.interactive {
		cli.addToHistory(statement + ";")
	}
	return cli.engine.Dispatch(w, statement)
}

func printBanner(w io.Writer) {
	fmt.Fprintln(w)
	fmt.Fprintf(w, "%s%sDirDB v%s%s\n", BoldColor, PromptColor, Version, ResetColor)
	fmt.Fprintln(w, "Type .help for commands, .exit to quit")
	fmt.Fprintln(w)
}

func (cli *CLI) prompt(continuation bool) {
	fmt.Fprint(cli.out, cli.getPrompt(continuation))
}

func (cli *CLI) getPrompt(multiLine bool) string {
	if multiLine {
		return fmt.Sprintf("%s   ...>%s ", PromptColor, ResetColor)
	}

	dbPart := ""
	if database, ok := cli.engine.Session.Selected(); ok {
		dbPart = fmt.Sprintf(" (%s)", database)
	}

	return fmt.Sprintf("%sdirdb%s>%s ", PromptColor, dbPart, ResetColor)
}

// handleCommand runs a dot command. Unknown commands are left to the
// statement reader.
func (cli *CLI) handleCommand(input string) bool {
	parts := strings.Fields(strings.TrimSpace(input))
	if len(parts) == 0 {
		return false
	}

	switch strings.ToLower(parts[0]) {
	case ".help", ".h", ".?":
		cli.printHelp()

	case ".databases", ".dbs":
		cli.showDatabases()

	case ".tables":
		if len(parts) > 1 {
			cli.showTables(parts[1])
		} else if database, ok := cli.engine.Session.Selected(); ok {
			cli.showTables(database)
		} else {
			fmt.Fprintf(cli.out, "%s✗ Usage: .tables <database>%s\n", ErrorColor, ResetColor)
		}

	case ".history":
		cli.printHistory()

	case ".log":
		printLog(cli.out, cli.engine.Persistence)

	case ".clear", ".cls":
		fmt.Fprint(cli.out, "\033[H\033[2J")

	case ".version":
		fmt.Fprintf(cli.out, "DirDB version %s\n", Version)

	default:
		return false
	}

	return true
}

func (cli *CLI) printHelp() {
	w := cli.out
	fmt.Fprintln(w)
	fmt.Fprintf(w, "%s%sSpecial Commands:%s\n", BoldColor, PromptColor, ResetColor)
	fmt.Fprintln(w, "  .help, .h        Show this help message")
	fmt.Fprintln(w, "  .exit            Exit the CLI")
	fmt.Fprintln(w, "  .databases       List all databases")
	fmt.Fprintln(w, "  .tables [db]     List tables in a database")
	fmt.Fprintln(w, "  .history         Show command history")
	fmt.Fprintln(w, "  .log             Show the journal")
	fmt.Fprintln(w, "  .clear           Clear the screen")
	fmt.Fprintln(w, "  .version         Show version info")
	fmt.Fprintln(w)
	fmt.Fprintf(w, "%s%sStatements:%s\n", BoldColor, PromptColor, ResetColor)
	fmt.Fprintln(w, "  CREATE DATABASE <name>;")
	fmt.Fprintln(w, "  DROP DATABASE <name>;")
	fmt.Fprintln(w, "  USE <name>;")
	fmt.Fprintln(w, "  CREATE TABLE <table> (<column> <type>, ...);")
	fmt.Fprintln(w, "  DROP TABLE <table>;")
	fmt.Fprintln(w, "  ALTER TABLE <table> ADD|DROP|MODIFY <column> [<type>];")
	fmt.Fprintln(w, "  INSERT INTO <table> values(<value>, ...);")
	fmt.Fprintln(w, "  SELECT <columns> FROM <table> [WHERE <column> <op> <value>];")
	fmt.Fprintln(w, "  UPDATE <table> SET <column> = <value>, ... [WHERE ...];")
	fmt.Fprintln(w, "  DELETE FROM <table> [WHERE ...];")
	fmt.Fprintln(w)
	fmt.Fprintf(w, "%s%sTypes:%s int, float, char(n), varchar(n), text, bool\n", BoldColor, PromptColor, ResetColor)
	fmt.Fprintln(w)
}

func (cli *CLI) showDatabases() {
	databases := cli.engine.Catalog.Databases()
	if len(databases) == 0 {
		fmt.Fprintln(cli.out, "No databases")
		return
	}
	for _, database := range databases {
		fmt.Fprintf(cli.out, "  %s\n", database.Name)
	}
}

func (cli *CLI) showTables(name string) {
	database, _, ok := cli.engine.Catalog.Database(name)
	if !ok {
		fmt.Fprintf(cli.out, "%s✗ Unknown database: %s%s\n", ErrorColor, name, ResetColor)
		return
	}

	tables := database.Tables()
	if len(tables) == 0 {
		fmt.Fprintln(cli.out, "No tables")
		return
	}
	for _, table := range tables {
		fmt.Fprintf(cli.out, "  %s\n", table.Name)
	}
}

func printLog(w io.Writer, persistence *ps.Persistence) {
	if !persistence.Journaled() {
		fmt.Fprintln(w, "Journal is disabled (start with -journal)")
		return
	}

	transactions := persistence.Transactions()
	if len(transactions) == 0 {
		fmt.Fprintln(w, "No transactions")
		return
	}

	for _, txn := range transactions {
		id := txn.Id
		if len(id) > 8 {
			id = id[:8]
		}
		fmt.Fprintf(w, "%s  %s  %s  %s\n", id, txn.When.Format("2006-01-02 15:04:05"), txn.Author, txn.Message)
	}
}

func (cli *CLI) addToHistory(cmd string) {
	// Don't add duplicates of the last command
	if len(cli.history) > 0 && cli.history[len(cli.history)-1] == cmd {
		return
	}
	cli.history = append(cli.history, cmd)

	if len(cli.history) > historyLimit {
		cli.history = cli.history[len(cli.history)-historyLimit:]
	}
}

func (cli *CLI) printHistory() {
	if len(cli.history) == 0 {
		fmt.Fprintln(cli.out, "No command history")
		return
	}

	start := 0
	if len(cli.history) > 20 {
		start = len(cli.history) - 20
	}

	for i := start; i < len(cli.history); i++ {
		fmt.Fprintf(cli.out, "  %3d  %s\n", i+1, cli.history[i])
	}
}

func getHistoryPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".dirdb_history")
}

func (cli *CLI) loadHistory() {
	if cli.historyFile == "" {
		return
	}

	file, err := os.Open(cli.historyFile)
	if err != nil {
		return
	}
	defer file.Close()

	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		cli.history = append(cli.history, scanner.Text())
	}
}

func (cli *CLI) saveHistory() {
	if cli.historyFile == "" {
		return
	}

	file, err := os.Create(cli.historyFile)
	if err != nil {
		return
	}
	defer file.Close()

	start := 0
	if len(cli.history) > historyLimit {
		start = len(cli.history) - historyLimit
	}

	for i := start; i < len(cli.history); i++ {
		_, _ = file.WriteString(cli.history[i] + "\n")
	}
}
