package cli

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/goddivor/Orinu-hub/internal/domain"
	"github.com/goddivor/Orinu-hub/internal/output"

	"github.com/spf13/cobra"
)

var catalogCmd = &cobra.Command{
	Use:     "catalog",
	Aliases: []string{"orinus"},
	Short:   "Browse the Orinu catalog",
}

var catalogListCmd = &cobra.Command{
	Use:   "list",
	Short: "List series",
	Long: `List catalog series, optionally filtered and sorted.

Examples:
  orinu catalog list --day monday
  orinu catalog list --category mystical --sort rating
  orinu catalog list --sort views --limit 5 --json`,
	Args: cobra.NoArgs,
	RunE: runCatalogList,
}

var catalogShowCmd = &cobra.Command{
	Use:   "show <id>",
	Short: "Show one series",
	Args:  cobra.ExactArgs(1),
	RunE:  runCatalogShow,
}

var catalogLandingCmd = &cobra.Command{
	Use:   "landing",
	Short: "Show the landing page sections",
	Long: `Show the landing page: trending series, the weekly schedule for one
day, one category and the new originals.`,
	Args: cobra.NoArgs,
	RunE: runCatalogLanding,
}

var catalogCategoriesCmd = &cobra.Command{
	Use:   "categories",
	Short: "List categories and publish days",
	Args:  cobra.NoArgs,
	RunE:  runCatalogCategories,
}

func init() {
	rootCmd.AddCommand(catalogCmd)
	catalogCmd.AddCommand(catalogListCmd, catalogShowCmd, catalogLandingCmd, catalogCategoriesCmd)

	catalogListCmd.Flags().String("day", "", "publish day (monday ... sunday)")
	catalogListCmd.Flags().String("category", "", "category id, or all")
	catalogListCmd.Flags().String("sort", "", "sort by views, likes or rating")
	catalogListCmd.Flags().Int("limit", 0, "maximum number of series (0 for all)")
	catalogListCmd.Flags().Bool("json", false, "output as JSON")

	catalogShowCmd.Flags().Bool("json", false, "output as JSON")

	catalogLandingCmd.Flags().String("day", string(domain.DefaultPublishDay), "publish day of the weekly section")
	catalogLandingCmd.Flags().String("category", string(domain.CategoryAll), "category of the category section")
	catalogLandingCmd.Flags().Bool("json", false, "output as JSON")

	catalogCategoriesCmd.Flags().Bool("json", false, "output as JSON")
}

func runCatalogList(cmd *cobra.Command, args []string) error {
	day, _ := cmd.Flags().GetString("day")
	category, _ := cmd.Flags().GetString("category")
	sortBy, _ := cmd.Flags().GetString("sort")
	limit, _ := cmd.Flags().GetInt("limit")
	jsonOutput, _ := cmd.Flags().GetBool("json")

	filter, err := parseCatalogFilter(day, category, sortBy)
	if err != nil {
		return err
	}
	if limit < 0 {
		return domain.NewAuthError(domain.KindInvalidInput, fmt.Errorf("limit must not be negative, got %d", limit))
	}
	filter.Limit = limit

	c, err := components()
	if err != nil {
		return err
	}
	orinus, err := c.CatalogUsecase.ListOrinus(commandContext(cmd), filter)
	if err != nil {
		return err
	}

	if jsonOutput {
		return printer.JSON(orinus)
	}
	if len(orinus) == 0 {
		printer.Info("Aucune série")
		return nil
	}
	if err := renderOrinus(orinus); err != nil {
		return err
	}
	printer.PrintHints("catalog list")
	return nil
}

func runCatalogShow(cmd *cobra.Command, args []string) error {
	jsonOutput, _ := cmd.Flags().GetBool("json")

	c, err := components()
	if err != nil {
		return err
	}
	orinu, err := c.CatalogUsecase.GetOrinu(commandContext(cmd), args[0])
	if errors.Is(err, domain.ErrOrinuNotFound) {
		return &output.CLIError{
			Summary:    "Série introuvable",
			Detail:     err.Error(),
			Suggestion: "Lancez 'orinu catalog list' pour voir les identifiants",
			ExitCode:   output.ExitGeneral,
			Err:        err,
		}
	}
	if err != nil {
		return err
	}

	if jsonOutput {
		return printer.JSON(orinu)
	}

	printer.Header(orinu.Title)
	table := printer.NewTable("CHAMP", "VALEUR")
	table.AddRow("id", orinu.ID)
	table.AddRow("auteur", orinu.Author)
	table.AddRow("catégorie", categoryName(orinu.Category))
	if orinu.PublishDay != "" {
		table.AddRow("parution", dayLabel(orinu.PublishDay))
	}
	table.AddRow("lecteurs", domain.FormatCount(orinu.Views))
	table.AddRow("j'aime", domain.FormatCount(orinu.Likes))
	table.AddRow("chapitres", domain.ChaptersLabel(orinu.Chapters))
	table.AddRow("note", strconv.FormatFloat(orinu.Rating, 'f', 1, 64))
	table.AddRow("couverture", orinu.CoverImage)
	if err := table.Render(); err != nil {
		return err
	}
	if orinu.Description != "" {
		printer.Print("")
		printer.Print("%s", orinu.Description)
	}
	return nil
}

func runCatalogLanding(cmd *cobra.Command, args []string) error {
	dayFlag, _ := cmd.Flags().GetString("day")
	categoryFlag, _ := cmd.Flags().GetString("category")
	jsonOutput, _ := cmd.Flags().GetBool("json")

	filter, err := parseCatalogFilter(dayFlag, categoryFlag, "")
	if err != nil {
		return err
	}

	c, err := components()
	if err != nil {
		return err
	}
	landing, err := c.CatalogUsecase.Landing(commandContext(cmd), filter.Day, filter.Category)
	if err != nil {
		return err
	}

	if jsonOutput {
		return printer.JSON(landing)
	}

	sections := []struct {
		title  string
		orinus []domain.Orinu
	}{
		{"Tendances", landing.Trending},
		{"Cette semaine: " + dayLabel(landing.Day), landing.Weekly},
		{"Catégorie: " + categoryName(landing.Category), landing.ByCategory},
		{"Nouveaux Orinus", landing.NewOriginals},
	}
	for i, section := range sections {
		if i > 0 {
			printer.Print("")
		}
		printer.Header(section.title)
		if len(section.orinus) == 0 {
			printer.Info("Aucune série")
			continue
		}
		if err := renderOrinus(section.orinus); err != nil {
			return err
		}
	}
	return nil
}

func runCatalogCategories(cmd *cobra.Command, args []string) error {
	jsonOutput, _ := cmd.Flags().GetBool("json")
	if jsonOutput {
		return printer.JSON(map[string]any{
			"categories": domain.Categories,
			"days":       domain.WeekDays,
		})
	}

	printer.Header("Catégories")
	categories := printer.NewTable("ID", "NOM", "COULEUR")
	for _, info := range domain.Categories {
		categories.AddRow(string(info.ID), info.Name, info.Color)
	}
	if err := categories.Render(); err != nil {
		return err
	}

	printer.Print("")
	printer.Header("Jours de parution")
	days := printer.NewTable("ID", "JOUR")
	for _, day := range domain.WeekDays {
		days.AddRow(string(day.ID), day.Label)
	}
	return days.Render()
}

func parseCatalogFilter(day, category, sortBy string) (domain.OrinuFilter, error) {
	d, err := domain.ParsePublishDay(day)
	if err != nil {
		return domain.OrinuFilter{}, domain.NewAuthError(domain.KindInvalidInput, err)
	}
	c, err := domain.ParseCategory(category)
	if err != nil {
		return domain.OrinuFilter{}, domain.NewAuthError(domain.KindInvalidInput, err)
	}
	s, err := domain.ParseSortKey(sortBy)
	if err != nil {
		return domain.OrinuFilter{}, domain.NewAuthError(domain.KindInvalidInput, err)
	}
	return domain.OrinuFilter{Day: d, Category: c, SortBy: s}, nil
}

func renderOrinus(orinus []domain.Orinu) error {
	table := printer.NewTable("ID", "TITRE", "AUTEUR", "CATÉGORIE", "JOUR", "LECTEURS", "CHAPITRES", "NOTE")
	for _, o := range orinus {
		table.AddRow(
			o.ID,
			o.Title,
			o.Author,
			categoryName(o.Category),
			dayLabel(o.PublishDay),
			domain.FormatCount(o.Views),
			domain.ChaptersLabel(o.Chapters),
			strconv.FormatFloat(o.Rating, 'f', 1, 64),
		)
	}
	return table.Render()
}

func categoryName(c domain.Category) string {
	if c == domain.CategoryAll || c == "" {
		return "Toutes"
	}
	for _, info := range domain.Categories {
		if info.ID == c {
			return info.Name
		}
	}
	return string(c)
}

func dayLabel(d domain.PublishDay) string {
	for _, wd := range domain.WeekDays {
		if wd.ID == d {
			return wd.Label
		}
	}
	return "-"
}
