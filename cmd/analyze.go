package cmd

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"strings"

	"github.com/manifoldco/promptui"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/spigell/skill-to-role/internal/analysis"
	"github.com/spigell/skill-to-role/internal/catalog"
	"github.com/spigell/skill-to-role/internal/export"
	"github.com/spigell/skill-to-role/internal/logger"
	"github.com/spigell/skill-to-role/internal/report"
)

const (
	PromptShowReport    = "Show report"
	PromptExportPDF     = "Export PDF"
	PromptSaveHTML      = "Save HTML report"
	PromptDumpToFile    = "Dump results to file"
	PromptAnalyzeOther  = "Analyze other skills"
	PromptExit          = "Exit"
	missingInputNotice  = "Enter skills"
	defaultHTMLFilename = "Skill_to_Role_Report.html"
)

var (
	errExit         = errors.New("exit requested")
	errAnalyzeAgain = errors.New("new analysis requested")
)

var actionPrompt = promptui.Select{
	Label: "What next?",
	Items: []string{PromptShowReport, PromptExportPDF, PromptSaveHTML, PromptDumpToFile, PromptAnalyzeOther, PromptExit},
}

var analyzeCmd = &cobra.Command{
	Use:   "analyze",
	Short: "Match skills against the role catalog and report the top roles",
	Run: func(cmd *cobra.Command, _ []string) {
		analyze(cmd)
	},
}

func init() {
	rootCmd.AddCommand(analyzeCmd)

	analyzeCmd.Flags().StringP("skills", "s", "", "comma separated skills, asked interactively when unset")
	analyzeCmd.Flags().BoolP("export", "e", false, "export the PDF report right after the analysis")
	analyzeCmd.Flags().String("html", "", "write the HTML report to the given file")
	analyzeCmd.Flags().IntP("top", "n", 0, "number of roles to report (default 3)")
	analyzeCmd.Flags().Bool("no-color", false, "disable colors in the terminal report")

	viper.BindPFlag("top", analyzeCmd.Flags().Lookup("top"))
}

// session carries everything the interactive actions need.
type session struct {
	ctx      context.Context
	svc      *analysis.Service
	logger   *zap.Logger
	config   *Config
	out      io.Writer
	htmlPath string
}

// analyze is the main command for the cli.
func analyze(cmd *cobra.Command) {
	ctx := context.Background()

	logger, err := logger.New(viper.GetBool("json"), viper.GetBool("debug"))
	if err != nil {
		log.Fatalf("creating a logger: %s", err)
	}

	config, err := getConfig()
	if err != nil {
		logger.Fatal("getting a config", zap.Error(err))
	}

	if noColor, _ := cmd.Flags().GetBool("no-color"); noColor {
		config.Color = false
	}

	logger.Debug("starting the skill-to-role", zap.String("version", version))

	// do not bother error since there is a valid parseable config
	pretty, _ := json.MarshalIndent(config, "", "  ")
	logger.Debug(fmt.Sprintf("starting with config: \n %s", pretty))

	store, err := loadCatalog(ctx, config, logger)
	if err != nil {
		logger.Fatal("loading the role catalog",
			zap.Error(err),
			zap.String("hint", "set SKILL_TO_ROLE_CATALOG environment variable, the --catalog flag or the 'catalog' key in the configuration file"),
		)
	}

	s := newSession(ctx, store, config, logger, os.Stdout)
	s.htmlPath, _ = cmd.Flags().GetString("html")

	for _, status := range s.svc.Filters() {
		logger.Debug("filter configured",
			zap.String("name", status.Name),
			zap.Bool("enabled", status.Enabled),
			zap.String("reason", status.Reason),
			zap.Any("details", status.Details),
		)
	}

	skills, _ := cmd.Flags().GetString("skills")
	if cmd.Flags().Changed("skills") {
		doExport, _ := cmd.Flags().GetBool("export")
		if err := s.once(skills, doExport); err != nil {
			logger.Fatal("exiting", zap.Error(err))
		}
		return
	}

	if err := s.interactive(); err != nil {
		logger.Fatal("exiting", zap.Error(err))
	}
}

func loadCatalog(ctx context.Context, config *Config, log *zap.Logger) (*catalog.Store, error) {
	store := catalog.NewStore()
	if err := store.Load(ctx, config.Catalog); err != nil {
		return nil, err
	}

	log.Info("catalog loaded",
		zap.String(logger.FieldCatalog, store.Source()),
		zap.Int("roles", store.Len()),
	)
	log.Debug("catalog roles", zap.Strings("names", store.Names()))
	return store, nil
}

func newSession(ctx context.Context, store *catalog.Store, config *Config, logger *zap.Logger, out io.Writer) *session {
	exportCfg := config.exportConfig()

	svc := analysis.New(store, analysis.Options{
		Limit:           config.Top,
		Filters:         config.filterConfig(),
		DisabledFilters: config.disabledFilters(),
		ExportDir:       exportCfg.Dir,
	}, logger)

	return &session{
		ctx:    ctx,
		svc:    svc,
		logger: logger,
		config: config,
		out:    out,
	}
}

// once analyzes the given skills without any prompts.
func (s *session) once(skills string, doExport bool) error {
	ok, err := s.analyze(skills)
	if err != nil || !ok {
		return err
	}

	if s.htmlPath != "" {
		if err := s.handleAction(PromptSaveHTML); err != nil {
			return err
		}
	}

	if doExport {
		return s.handleAction(PromptExportPDF)
	}
	return nil
}

func (s *session) interactive() error {
	for {
		skillsPrompt := promptui.Prompt{
			Label: "Skills (comma separated)",
		}

		skills, err := skillsPrompt.Run()
		if err != nil {
			if errors.Is(err, promptui.ErrInterrupt) || errors.Is(err, promptui.ErrEOF) {
				return nil
			}
			return err
		}

		ok, err := s.analyze(skills)
		if err != nil {
			return err
		}
		if !ok {
			continue
		}

		err = s.actions()
		switch {
		case errors.Is(err, errAnalyzeAgain):
			continue
		case errors.Is(err, errExit):
			return nil
		default:
			return err
		}
	}
}

// actions runs the action menu until the user leaves it.
func (s *session) actions() error {
	for {
		_, action, err := actionPrompt.Run()
		if err != nil {
			if errors.Is(err, promptui.ErrInterrupt) {
				return errExit
			}
			return err
		}

		if err := s.handleAction(action); err != nil {
			if errors.Is(err, errExit) || errors.Is(err, errAnalyzeAgain) {
				return err
			}
			s.logger.Error("action failed", zap.String("action", action), zap.Error(err))
		}
	}
}

// analyze scores the skills and prints the report. It returns false when there
// was nothing to analyze.
func (s *session) analyze(skills string) (bool, error) {
	_, err := s.svc.Analyze(s.ctx, skills)
	if errors.Is(err, analysis.ErrMissingInput) {
		fmt.Fprintln(s.out, missingInputNotice)
		return false, nil
	}
	if err != nil {
		return false, err
	}

	return true, s.handleAction(PromptShowReport)
}

func (s *session) handleAction(action string) error {
	switch action {
	case PromptShowReport:
		run, ok := s.svc.Last()
		if !ok {
			return analysis.ErrNoAnalysis
		}
		return report.RenderText(s.out, run.View(), report.TextOptions{Color: s.config.Color})
	case PromptExportPDF:
		path, err := s.svc.Export(s.ctx, s.exportPath(), export.NewPDFWriter())
		if err != nil {
			return fmt.Errorf("export pdf: %w", err)
		}
		fmt.Fprintf(s.out, "Report saved to %s\n", path)
		return nil
	case PromptSaveHTML:
		path, err := s.saveHTML()
		if err != nil {
			return fmt.Errorf("save html report: %w", err)
		}
		s.logger.Info("html report saved", zap.String("filename", path))
		return nil
	case PromptDumpToFile:
		run, ok := s.svc.Last()
		if !ok {
			return analysis.ErrNoAnalysis
		}
		filename, err := run.DumpToTmpFile()
		if err != nil {
			return fmt.Errorf("dump results to file: %w", err)
		}
		s.logger.Info("dumping result to file", zap.String("filename", filename))
		return nil
	case PromptAnalyzeOther:
		return errAnalyzeAgain
	case PromptExit:
		s.logger.Info("exiting", zap.String("reason", "got exit from prompt"))
		return errExit
	default:
		return fmt.Errorf("invalid action: %s", action)
	}
}

// exportPath is empty when no filename is configured, so the service falls back
// to its default file name.
func (s *session) exportPath() string {
	cfg := s.config.exportConfig()
	if strings.TrimSpace(cfg.Filename) == "" {
		return ""
	}
	return filepath.Join(cfg.Dir, cfg.Filename)
}

func (s *session) saveHTML() (string, error) {
	run, ok := s.svc.Last()
	if !ok {
		return "", analysis.ErrNoAnalysis
	}

	path := s.htmlPath
	if path == "" {
		path = filepath.Join(s.config.exportConfig().Dir, defaultHTMLFilename)
	}

	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return "", err
		}
	}

	file, err := os.Create(path)
	if err != nil {
		return "", err
	}
	defer file.Close()

	if err := report.RenderHTML(file, run.View()); err != nil {
		return "", err
	}
	return path, file.Close()
}
