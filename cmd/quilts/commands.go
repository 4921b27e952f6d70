package main

import (
	"bytes"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/jhoicas/quilts-api/internal/application/dto"
	"github.com/jhoicas/quilts-api/internal/application/importer"
	"github.com/jhoicas/quilts-api/internal/domain"
	"github.com/jhoicas/quilts-api/internal/domain/quilt"
	"github.com/jhoicas/quilts-api/internal/infrastructure/pdf"
	"github.com/jhoicas/quilts-api/internal/infrastructure/spreadsheet"
	"github.com/jhoicas/quilts-api/pkg/config"
	"github.com/jhoicas/quilts-api/pkg/logger"
)

type rootOptions struct {
	driver  string
	dbPath  string
	jsonOut bool
}

// cli estado compartido por los subcomandos; la BD se abre la primera vez que se necesita.
type cli struct {
	opts rootOptions
	app  *app
}

func (c *cli) open(cmd *cobra.Command) (*app, error) {
	if c.app != nil {
		return c.app, nil
	}
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("cargar configuración: %w", err)
	}
	if c.opts.driver != "" {
		cfg.DB.Driver = strings.ToLower(c.opts.driver)
	}
	if c.opts.dbPath != "" {
		cfg.DB.Path = c.opts.dbPath
	}
	if err := cfg.DB.Validate(); err != nil {
		return nil, err
	}

	log := logger.New(logger.Config{Env: cfg.App.Env, Level: cfg.Log.Level, Out: cmd.ErrOrStderr()})
	a, err := openApp(cmd.Context(), cfg, log)
	if err != nil {
		return nil, err
	}
	c.app = a
	return a, nil
}

// newRootCmd devuelve el comando raíz y la función que libera la BD si algún subcomando la abrió.
func newRootCmd() (*cobra.Command, func()) {
	c := &cli{}
	cmd := &cobra.Command{
		Use:           "quilts",
		Short:         "Inventario de edredones del hogar",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	cmd.PersistentFlags().StringVar(&c.opts.driver, "db-driver", "", "Almacenamiento: sqlite o postgres (por defecto DB_DRIVER)")
	cmd.PersistentFlags().StringVar(&c.opts.dbPath, "db", "", "Archivo SQLite (por defecto DB_PATH)")
	cmd.PersistentFlags().BoolVar(&c.opts.jsonOut, "json", false, "Salida en JSON")

	cmd.AddCommand(
		newImportCmd(c),
		newExportCmd(c),
		newReportCmd(c),
		newListCmd(c),
		newShowCmd(c),
		newAddCmd(c),
		newDeleteCmd(c),
		newUsageCmd(c),
		newRecommendCmd(c),
	)
	return cmd, c.close
}

func (c *cli) close() {
	if c.app != nil {
		c.app.close()
		c.app = nil
	}
}

// ─── Importación y exportación ───────────────────────────────────────────────

func newImportCmd(c *cli) *cobra.Command {
	var dryRun bool
	cmd := &cobra.Command{
		Use:   "import [archivo]",
		Short: "Importa la hoja de inventario (.xlsx o .csv)",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := c.open(cmd)
			if err != nil {
				return err
			}
			path := a.cfg.Import.FilePath
			if len(args) == 1 {
				path = args[0]
			}
			sheet, err := spreadsheet.ReadFile(path)
			if err != nil {
				return err
			}
			res, err := a.importUseCase().Import(cmd.Context(), sheet, importer.Options{DryRun: dryRun})
			if err != nil {
				return err
			}
			return c.print(cmd, res, func(p *printer) { p.importResult(res) })
		},
	}
	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "Valida e informa sin guardar cambios")
	return cmd
}

func newExportCmd(c *cli) *cobra.Command {
	return &cobra.Command{
		Use:   "export <salida.xlsx>",
		Short: "Exporta el inventario a xlsx (reimportable)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := c.open(cmd)
			if err != nil {
				return err
			}
			report, err := a.reportUseCase().Build(cmd.Context())
			if err != nil {
				return err
			}
			var buf bytes.Buffer
			if err := spreadsheet.Export(&buf, report); err != nil {
				return err
			}
			if err := os.WriteFile(args[0], buf.Bytes(), 0o644); err != nil {
				return fmt.Errorf("escribir %s: %w", args[0], err)
			}
			a.log.Info().Str("file", args[0]).Int("quilts", len(report.Rows)).Msg("inventario exportado")
			return nil
		},
	}
}

func newReportCmd(c *cli) *cobra.Command {
	return &cobra.Command{
		Use:   "report <salida.pdf>",
		Short: "Genera el informe de uso en PDF",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := c.open(cmd)
			if err != nil {
				return err
			}
			out, err := a.reportUseCase().BuildPDF(cmd.Context(), pdf.NewUsageReportGenerator())
			if err != nil {
				return err
			}
			if err := os.WriteFile(args[0], out, 0o644); err != nil {
				return fmt.Errorf("escribir %s: %w", args[0], err)
			}
			a.log.Info().Str("file", args[0]).Int("bytes", len(out)).Msg("informe generado")
			return nil
		},
	}
}

// ─── Edredones ───────────────────────────────────────────────────────────────

func newListCmd(c *cli) *cobra.Command {
	var f dto.QuiltFilter
	cmd := &cobra.Command{
		Use:   "list",
		Short: "Lista edredones con filtros",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			a, err := c.open(cmd)
			if err != nil {
				return err
			}
			out, err := a.quiltUseCase().List(cmd.Context(), f)
			if err != nil {
				return err
			}
			return c.print(cmd, out, func(p *printer) { p.quilts(out.Items) })
		},
	}
	cmd.Flags().StringVar(&f.Season, "season", "", "winter, spring_autumn, summer (o 冬/春秋/夏)")
	cmd.Flags().StringVar(&f.Status, "status", "", "available, in_use, maintenance, storage")
	cmd.Flags().StringVar(&f.Location, "location", "", "Subcadena de la ubicación")
	cmd.Flags().StringVar(&f.Search, "search", "", "Busca en nombre, marca, color y notas")
	cmd.Flags().StringVar(&f.SortBy, "sort", "item_number", "Campo de orden")
	cmd.Flags().StringVar(&f.SortOrder, "order", "asc", "asc o desc")
	cmd.Flags().IntVar(&f.Limit, "limit", dto.DefaultLimit, "Máximo de resultados")
	cmd.Flags().IntVar(&f.Offset, "offset", 0, "Desplazamiento")
	return cmd
}

func newShowCmd(c *cli) *cobra.Command {
	return &cobra.Command{
		Use:   "show <id|número>",
		Short: "Muestra un edredón con su historial de uso",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := c.open(cmd)
			if err != nil {
				return err
			}
			id, err := c.resolveQuilt(cmd, args[0])
			if err != nil {
				return err
			}
			out, err := a.quiltUseCase().GetDetail(cmd.Context(), id)
			if err != nil {
				return err
			}
			return c.print(cmd, out, func(p *printer) { p.detail(out) })
		},
	}
}

func newAddCmd(c *cli) *cobra.Command {
	var in dto.CreateQuiltRequest
	var brand, purchased, notes string
	cmd := &cobra.Command{
		Use:   "add",
		Short: "Registra un edredón manualmente",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			a, err := c.open(cmd)
			if err != nil {
				return err
			}
			if in.PurchaseDate, err = parseDateFlag("purchased", purchased); err != nil {
				return err
			}
			in.Brand = optional(brand)
			in.Notes = optional(notes)
			out, err := a.quiltUseCase().Create(cmd.Context(), in)
			if err != nil {
				return err
			}
			return c.print(cmd, out, func(p *printer) { p.quilts([]dto.QuiltResponse{*out}) })
		},
	}
	cmd.Flags().IntVar(&in.ItemNumber, "item", 0, "Número de item (obligatorio)")
	cmd.Flags().StringVar(&in.Name, "name", "", "Nombre (por defecto se deriva)")
	cmd.Flags().StringVar(&in.Season, "season", "", "Temporada")
	cmd.Flags().StringVar(&in.FillMaterial, "fill", "", "Relleno o composición")
	cmd.Flags().StringVar(&in.Color, "color", "", "Color")
	cmd.Flags().IntVar(&in.WeightGrams, "weight", 0, "Peso en gramos")
	cmd.Flags().StringVar(&in.Location, "location", "", "Ubicación")
	cmd.Flags().StringVar(&brand, "brand", "", "Marca")
	cmd.Flags().StringVar(&purchased, "purchased", "", "Fecha de compra (2006-01-02)")
	cmd.Flags().StringVar(&notes, "notes", "", "Notas")
	_ = cmd.MarkFlagRequired("item")
	return cmd
}

func newDeleteCmd(c *cli) *cobra.Command {
	return &cobra.Command{
		Use:   "delete <id|número>",
		Short: "Elimina un edredón y su historial",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := c.open(cmd)
			if err != nil {
				return err
			}
			id, err := c.resolveQuilt(cmd, args[0])
			if err != nil {
				return err
			}
			if err := a.quiltUseCase().Delete(cmd.Context(), id); err != nil {
				return err
			}
			a.log.Info().Str("quilt_id", id).Msg("edredón eliminado")
			return nil
		},
	}
}

// ─── Uso ─────────────────────────────────────────────────────────────────────

func newUsageCmd(c *cli) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "usage",
		Short: "Ciclo de uso: empezar, terminar, consultar",
	}
	cmd.AddCommand(newUsageStartCmd(c), newUsageEndCmd(c), newUsageCurrentCmd(c), newUsageHistoryCmd(c))
	return cmd
}

func newUsageStartCmd(c *cli) *cobra.Command {
	var started, expected, usageType, notes string
	cmd := &cobra.Command{
		Use:   "start <id|número>",
		Short: "Empieza a usar un edredón disponible",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := c.open(cmd)
			if err != nil {
				return err
			}
			id, err := c.resolveQuilt(cmd, args[0])
			if err != nil {
				return err
			}
			in := dto.StartUsageRequest{QuiltID: id, UsageType: usageType, Notes: optional(notes)}
			if in.StartedAt, err = parseDateFlag("date", started); err != nil {
				return err
			}
			if in.ExpectedEndDate, err = parseDateFlag("expected-end", expected); err != nil {
				return err
			}
			out, err := a.usageUseCase().Start(cmd.Context(), in)
			if err != nil {
				return err
			}
			return c.print(cmd, out, func(p *printer) { p.currentUsages([]dto.CurrentUsageResponse{*out}) })
		},
	}
	cmd.Flags().StringVar(&started, "date", "", "Fecha de inicio (por defecto hoy)")
	cmd.Flags().StringVar(&expected, "expected-end", "", "Fecha prevista de fin")
	cmd.Flags().StringVar(&usageType, "type", "", "Tipo de uso (por defecto regular)")
	cmd.Flags().StringVar(&notes, "notes", "", "Notas")
	return cmd
}

func newUsageEndCmd(c *cli) *cobra.Command {
	var ended, notes string
	cmd := &cobra.Command{
		Use:   "end <usage-id>",
		Short: "Termina un uso en curso y lo guarda en el historial",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := c.open(cmd)
			if err != nil {
				return err
			}
			in := dto.EndUsageRequest{UsageID: args[0], Notes: optional(notes)}
			if in.EndDate, err = parseDateFlag("date", ended); err != nil {
				return err
			}
			out, err := a.usageUseCase().End(cmd.Context(), in)
			if err != nil {
				return err
			}
			return c.print(cmd, out, func(p *printer) { p.periods([]dto.UsagePeriodResponse{*out}) })
		},
	}
	cmd.Flags().StringVar(&ended, "date", "", "Fecha de fin (por defecto hoy)")
	cmd.Flags().StringVar(&notes, "notes", "", "Notas del periodo")
	return cmd
}

func newUsageCurrentCmd(c *cli) *cobra.Command {
	return &cobra.Command{
		Use:   "current",
		Short: "Lista los usos en curso",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			a, err := c.open(cmd)
			if err != nil {
				return err
			}
			out, err := a.usageUseCase().ListCurrent(cmd.Context())
			if err != nil {
				return err
			}
			return c.print(cmd, out, func(p *printer) { p.currentUsages(out) })
		},
	}
}

func newUsageHistoryCmd(c *cli) *cobra.Command {
	var limit int
	cmd := &cobra.Command{
		Use:   "history <id|número>",
		Short: "Historial de uso de un edredón, el más reciente primero",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := c.open(cmd)
			if err != nil {
				return err
			}
			id, err := c.resolveQuilt(cmd, args[0])
			if err != nil {
				return err
			}
			out, err := a.usageUseCase().History(cmd.Context(), id, limit)
			if err != nil {
				return err
			}
			return c.print(cmd, out, func(p *printer) { p.periods(out) })
		},
	}
	cmd.Flags().IntVar(&limit, "limit", 0, "Máximo de periodos (por defecto 10)")
	return cmd
}

// ─── Recomendaciones ─────────────────────────────────────────────────────────

func newRecommendCmd(c *cli) *cobra.Command {
	return &cobra.Command{
		Use:   "recommend [temporada]",
		Short: "Recomienda edredones disponibles (por defecto, la temporada actual)",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := c.open(cmd)
			if err != nil {
				return err
			}
			uc := a.recommendationUseCase()
			var out *dto.RecommendationsResponse
			if len(args) == 1 {
				out, err = uc.Recommend(cmd.Context(), args[0])
			} else {
				out, err = uc.RecommendCurrent(cmd.Context())
			}
			if err != nil {
				return err
			}
			return c.print(cmd, out, func(p *printer) { p.recommendations(out) })
		},
	}
}

// ─── helpers ─────────────────────────────────────────────────────────────────

// resolveQuilt acepta el ID interno o el número de item.
func (c *cli) resolveQuilt(cmd *cobra.Command, arg string) (string, error) {
	n, err := strconv.Atoi(strings.TrimSpace(arg))
	if err != nil {
		return arg, nil
	}
	q, err := c.app.quiltUseCase().GetByItemNumber(cmd.Context(), n)
	if err != nil {
		return "", err
	}
	return q.ID, nil
}

func parseDateFlag(name, raw string) (*time.Time, error) {
	if strings.TrimSpace(raw) == "" {
		return nil, nil
	}
	t, ok := quilt.ParseDate(raw)
	if !ok {
		return nil, fmt.Errorf("%w: --%s %q no es una fecha", domain.ErrInvalidInput, name, raw)
	}
	return &t, nil
}

func optional(s string) *string {
	if strings.TrimSpace(s) == "" {
		return nil
	}
	return &s
}
