// Package resources builds the catalog and inbox commands. Every collection
// goes through the same list/get/delete shape over its REST gateway, with
// the shared search/sort/paginate pipeline behind the list.
package resources

import (
	"context"
	"fmt"
	"strconv"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/mssd/mssd-console/cli/helpers"
	"github.com/mssd/mssd-console/cli/tui"
	"github.com/mssd/mssd-console/internal/api"
	"github.com/mssd/mssd-console/internal/form"
	"github.com/mssd/mssd-console/internal/model"
	"github.com/mssd/mssd-console/internal/pipeline"
)

// descriptor declares one browsable collection: its gateway, how a record
// flattens into table cells and which fields free-text search scans.
type descriptor[T model.Entity] struct {
	use     string
	short   string
	title   string
	gateway func(*api.Client) *api.Resource[T]
	columns []tui.Column
	cells   func(T) []string
	label   func(T) string
}

// Commands builds one command tree per backend collection.
func Commands() []*cobra.Command {
	return []*cobra.Command{
		build(formationDescriptor()),
		build(themeDescriptor()),
		build(portfolioDescriptor()),
		build(calendarDescriptor()),
		build(reservationDescriptor()),
		build(calendarReservationDescriptor()),
		build(customRequestDescriptor()),
		build(annexRequestDescriptor()),
		build(contactDescriptor()),
		build(reviewDescriptor()),
		build(newsletterDescriptor()),
		build(highlightDescriptor()),
	}
}

func build[T model.Entity](d descriptor[T]) *cobra.Command {
	cmd := &cobra.Command{
		Use:   d.use,
		Short: d.short,
	}
	cmd.AddCommand(listCmd(d), getCmd(d), deleteCmd(d))
	return cmd
}

type listPayload[T any] struct {
	Items      []T `json:"items"`
	Page       int `json:"page"`
	TotalPages int `json:"totalPages"`
	TotalItems int `json:"totalItems"`
}

func listCmd[T model.Entity](d descriptor[T]) *cobra.Command {
	var (
		search   string
		sortCol  int
		page     int
		pageSize int
	)
	cmd := &cobra.Command{
		Use:   "list",
		Short: "Browse " + d.title,
		RunE: func(cmd *cobra.Command, _ []string) error {
			app, err := helpers.AppFrom(cmd.Context())
			if err != nil {
				return err
			}
			if pageSize <= 0 {
				pageSize = app.Config.CLI.PageSize
			}

			if helpers.ResolveMode(app.Config) == helpers.ModeTUI {
				return runBrowse(cmd.Context(), app, d, pageSize)
			}

			items, err := d.gateway(app.Client).List(cmd.Context())
			if err != nil {
				return err
			}
			pipe := pipeline.New(pageSize, d.cells)
			pipe.SetSource(items)
			pipe.SetTerm(search)
			if sortCol >= 0 {
				pipe.SetSort(pipeline.Alphabetical(func(item T) string {
					cells := d.cells(item)
					if sortCol < len(cells) {
						return cells[sortCol]
					}
					return ""
				}))
			}
			pipe.GoToPage(page)

			view := pipe.View()
			return printJSON(cmd, listPayload[T]{
				Items:      view.Items,
				Page:       view.Window.CurrentPage,
				TotalPages: view.Window.TotalPages(),
				TotalItems: view.Window.TotalItems,
			})
		},
	}
	cmd.Flags().StringVar(&search, "search", "", "Free-text search across the listed fields")
	cmd.Flags().IntVar(&sortCol, "sort-column", -1, "Column index to sort by, -1 keeps fetch order")
	cmd.Flags().IntVar(&page, "page", 1, "Page number")
	cmd.Flags().IntVar(&pageSize, "page-size", 0, "Items per page (defaults to the configured page size)")
	return cmd
}

func runBrowse[T model.Entity](ctx context.Context, app *helpers.App, d descriptor[T], pageSize int) error {
	load := func(ctx context.Context) ([]tui.Row, error) {
		items, err := d.gateway(app.Client).List(ctx)
		if err != nil {
			return nil, err
		}
		rows := make([]tui.Row, len(items))
		for i, item := range items {
			rows[i] = tui.Row{ID: item.EntityID(), Cells: d.cells(item)}
		}
		return rows, nil
	}
	m := tui.NewBrowse(ctx, d.title, d.columns, pageSize, load)
	_, err := tea.NewProgram(m, tea.WithAltScreen()).Run()
	return err
}

func getCmd[T model.Entity](d descriptor[T]) *cobra.Command {
	return &cobra.Command{
		Use:   "get <id>",
		Short: "Show one record",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := helpers.AppFrom(cmd.Context())
			if err != nil {
				return err
			}
			id, err := strconv.ParseInt(args[0], 10, 64)
			if err != nil {
				return fmt.Errorf("invalid id %q", args[0])
			}
			item, err := d.gateway(app.Client).Get(cmd.Context(), id)
			if err != nil {
				return err
			}
			return printJSON(cmd, item)
		},
	}
}

func deleteCmd[T model.Entity](d descriptor[T]) *cobra.Command {
	var yes bool
	cmd := &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete a record",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := helpers.AppFrom(cmd.Context())
			if err != nil {
				return err
			}
			id, err := strconv.ParseInt(args[0], 10, 64)
			if err != nil {
				return fmt.Errorf("invalid id %q", args[0])
			}
			gateway := d.gateway(app.Client)
			existing, err := gateway.Get(cmd.Context(), id)
			if err != nil {
				return err
			}

			session := form.NewSession[T](nil, form.Hooks[T]{
				Delete: gateway.Delete,
			})
			confirm := func(item T) bool {
				if yes {
					return true
				}
				if helpers.ResolveMode(app.Config) != helpers.ModeTUI {
					return false
				}
				ok, err := tui.ConfirmDelete(d.label(item))
				return err == nil && ok
			}
			if err := session.Delete(cmd.Context(), *existing, confirm); err != nil {
				return err
			}
			return printJSON(cmd, map[string]any{"deleted": id})
		},
	}
	cmd.Flags().BoolVar(&yes, "yes", false, "Skip the confirmation prompt")
	return cmd
}

func printJSON(cmd *cobra.Command, data any) error {
	out, err := helpers.NewJSONFormatter(true).FormatSuccess(data)
	if err != nil {
		return err
	}
	fmt.Fprintln(cmd.OutOrStdout(), out)
	return nil
}

func formatDate(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Format("2006-01-02")
}

func formationDescriptor() descriptor[model.Formation] {
	return descriptor[model.Formation]{
		use:     "formation",
		short:   "Manage training offerings",
		title:   "Formations",
		gateway: func(c *api.Client) *api.Resource[model.Formation] { return c.Formations() },
		columns: []tui.Column{
			{Title: "Titre", Width: 30},
			{Title: "Catégorie", Width: 16},
			{Title: "Niveau", Width: 14},
			{Title: "Prix", Width: 10},
			{Title: "Durée", Width: 10},
		},
		cells: func(f model.Formation) []string {
			return []string{f.Title, f.Category, f.Level, fmt.Sprintf("%.2f", f.Price), f.Duration}
		},
		label: func(f model.Formation) string { return f.Title },
	}
}

func themeDescriptor() descriptor[model.Theme] {
	return descriptor[model.Theme]{
		use:     "theme",
		short:   "Manage formation themes",
		title:   "Thèmes",
		gateway: func(c *api.Client) *api.Resource[model.Theme] { return c.Themes() },
		columns: []tui.Column{
			{Title: "Nom", Width: 26},
			{Title: "Description", Width: 44},
		},
		cells: func(t model.Theme) []string {
			return []string{t.Name, model.Excerpt(t.Description, 60)}
		},
		label: func(t model.Theme) string { return t.Name },
	}
}

func portfolioDescriptor() descriptor[model.Portfolio] {
	return descriptor[model.Portfolio]{
		use:     "portfolio",
		short:   "Manage delivered projects",
		title:   "Portfolio",
		gateway: func(c *api.Client) *api.Resource[model.Portfolio] { return c.Portfolio() },
		columns: []tui.Column{
			{Title: "Titre", Width: 28},
			{Title: "Client", Width: 20},
			{Title: "Catégorie", Width: 16},
			{Title: "Date", Width: 12},
		},
		cells: func(p model.Portfolio) []string {
			return []string{p.Title, p.ClientName, p.Category, p.ProjectDate}
		},
		label: func(p model.Portfolio) string { return p.Title },
	}
}

func calendarDescriptor() descriptor[model.CalendarEvent] {
	return descriptor[model.CalendarEvent]{
		use:     "calendar",
		short:   "Manage scheduled sessions",
		title:   "Calendrier",
		gateway: func(c *api.Client) *api.Resource[model.CalendarEvent] { return c.Calendar() },
		columns: []tui.Column{
			{Title: "Titre", Width: 28},
			{Title: "Début", Width: 12},
			{Title: "Lieu", Width: 18},
			{Title: "Places", Width: 8},
			{Title: "Statut", Width: 10},
		},
		cells: func(e model.CalendarEvent) []string {
			return []string{
				e.Title, formatDate(e.StartTime), e.Location,
				strconv.Itoa(e.AvailableSpots), e.Status,
			}
		},
		label: func(e model.CalendarEvent) string { return e.Title },
	}
}

func reservationDescriptor() descriptor[model.Reservation] {
	return descriptor[model.Reservation]{
		use:     "reservation",
		short:   "Manage event reservations",
		title:   "Réservations",
		gateway: func(c *api.Client) *api.Resource[model.Reservation] { return c.Reservations() },
		columns: []tui.Column{
			{Title: "Visiteur", Width: 22},
			{Title: "Email", Width: 26},
			{Title: "Personnes", Width: 10},
			{Title: "Statut", Width: 10},
		},
		cells: func(r model.Reservation) []string {
			return []string{r.VisitorName, r.VisitorEmail, strconv.Itoa(r.NumberOfPeople), r.Status}
		},
		label: func(r model.Reservation) string { return r.VisitorName },
	}
}

func calendarReservationDescriptor() descriptor[model.CalendarReservation] {
	return descriptor[model.CalendarReservation]{
		use:   "calendar-reservation",
		short: "Manage private-session requests",
		title: "Réservations privées",
		gateway: func(c *api.Client) *api.Resource[model.CalendarReservation] {
			return c.CalendarReservations()
		},
		columns: []tui.Column{
			{Title: "Client", Width: 22},
			{Title: "Événement", Width: 26},
			{Title: "Date", Width: 12},
			{Title: "Statut", Width: 10},
		},
		cells: func(r model.CalendarReservation) []string {
			return []string{r.ClientName, r.EventTitle, formatDate(r.EventDate), r.Status}
		},
		label: func(r model.CalendarReservation) string { return r.EventTitle },
	}
}

func customRequestDescriptor() descriptor[model.CustomRequest] {
	return descriptor[model.CustomRequest]{
		use:     "custom-request",
		short:   "Manage tailored-training inquiries",
		title:   "Demandes sur mesure",
		gateway: func(c *api.Client) *api.Resource[model.CustomRequest] { return c.CustomRequests() },
		columns: []tui.Column{
			{Title: "Société", Width: 22},
			{Title: "Contact", Width: 20},
			{Title: "Sujet", Width: 24},
			{Title: "Statut", Width: 12},
		},
		cells: func(r model.CustomRequest) []string {
			return []string{r.CompanyName, r.ContactPerson, r.Subject, r.Status}
		},
		label: func(r model.CustomRequest) string { return r.Subject },
	}
}

func annexRequestDescriptor() descriptor[model.AnnexRequest] {
	return descriptor[model.AnnexRequest]{
		use:     "annex-request",
		short:   "Manage annex program bookings",
		title:   "Demandes annexes",
		gateway: func(c *api.Client) *api.Resource[model.AnnexRequest] { return c.AnnexRequests() },
		columns: []tui.Column{
			{Title: "Société", Width: 22},
			{Title: "Email", Width: 26},
			{Title: "Modalité", Width: 12},
			{Title: "Statut", Width: 12},
		},
		cells: func(r model.AnnexRequest) []string {
			return []string{r.CompanyName, r.Email, r.Modality, r.Status}
		},
		label: func(r model.AnnexRequest) string { return r.CompanyName },
	}
}

func contactDescriptor() descriptor[model.Contact] {
	return descriptor[model.Contact]{
		use:     "contact",
		short:   "Manage contact messages",
		title:   "Messages",
		gateway: func(c *api.Client) *api.Resource[model.Contact] { return c.Contacts() },
		columns: []tui.Column{
			{Title: "Nom", Width: 22},
			{Title: "Email", Width: 26},
			{Title: "Sujet", Width: 24},
			{Title: "Reçu", Width: 12},
		},
		cells: func(c model.Contact) []string {
			return []string{c.FullName, c.Email, c.Subject, formatDate(c.DateSent)}
		},
		label: func(c model.Contact) string { return c.Subject },
	}
}

func reviewDescriptor() descriptor[model.Review] {
	return descriptor[model.Review]{
		use:     "review",
		short:   "Manage formation reviews",
		title:   "Avis",
		gateway: func(c *api.Client) *api.Resource[model.Review] { return c.Reviews() },
		columns: []tui.Column{
			{Title: "Auteur", Width: 22},
			{Title: "Note", Width: 6},
			{Title: "Commentaire", Width: 40},
		},
		cells: func(r model.Review) []string {
			return []string{r.AuthorName, strconv.Itoa(r.Rating), model.Excerpt(r.Comment, 60)}
		},
		label: func(r model.Review) string { return r.AuthorName },
	}
}

func newsletterDescriptor() descriptor[model.Newsletter] {
	return descriptor[model.Newsletter]{
		use:     "newsletter",
		short:   "Manage newsletter subscriptions",
		title:   "Newsletter",
		gateway: func(c *api.Client) *api.Resource[model.Newsletter] { return c.Newsletter() },
		columns: []tui.Column{
			{Title: "Email", Width: 32},
			{Title: "Inscrit le", Width: 12},
		},
		cells: func(n model.Newsletter) []string {
			return []string{n.Email, formatDate(n.DateSubscribed)}
		},
		label: func(n model.Newsletter) string { return n.Email },
	}
}

func highlightDescriptor() descriptor[model.Highlight] {
	return descriptor[model.Highlight]{
		use:     "highlight",
		short:   "Manage homepage highlights",
		title:   "À la une",
		gateway: func(c *api.Client) *api.Resource[model.Highlight] { return c.Highlights() },
		columns: []tui.Column{
			{Title: "Titre", Width: 28},
			{Title: "Sous-titre", Width: 30},
			{Title: "Visible", Width: 8},
		},
		cells: func(h model.Highlight) []string {
			visible := "non"
			if h.Visible {
				visible = "oui"
			}
			return []string{h.Title, h.Subtitle, visible}
		},
		label: func(h model.Highlight) string { return h.Title },
	}
}
