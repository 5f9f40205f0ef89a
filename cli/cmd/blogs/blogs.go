// Package blogs implements the blog commands: browse, CRUD, publish state
// and the admin counters.
package blogs

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
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

// Cmd builds the blog command tree.
func Cmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "blog",
		Short: "Manage blog articles",
	}
	cmd.AddCommand(
		listCmd(),
		getCmd(),
		createCmd(),
		updateCmd(),
		deleteCmd(),
		publishCmd(true),
		publishCmd(false),
		toggleCmd(),
		statsCmd(),
		categoriesCmd(),
		authorsCmd(),
	)
	return cmd
}

type listPayload struct {
	Items      []model.Blog `json:"items"`
	Page       int          `json:"page"`
	TotalPages int          `json:"totalPages"`
	TotalItems int          `json:"totalItems"`
}

func listCmd() *cobra.Command {
	var (
		search     string
		category   string
		status     string
		sortKey    string
		page       int
		pageSize   int
		serverPage bool
	)
	cmd := &cobra.Command{
		Use:   "list",
		Short: "Browse blog articles",
		RunE: func(cmd *cobra.Command, _ []string) error {
			app, err := helpers.AppFrom(cmd.Context())
			if err != nil {
				return err
			}
			if pageSize <= 0 {
				pageSize = app.Config.CLI.PageSize
			}

			if serverPage {
				return runServerList(cmd, app, search, page, pageSize)
			}

			if helpers.ResolveMode(app.Config) == helpers.ModeTUI {
				return runBrowse(cmd.Context(), app, pageSize)
			}

			blogs, err := app.Client.Blogs().List(cmd.Context())
			if err != nil {
				return err
			}

			pipe := pipeline.New(pageSize, func(b model.Blog) []string {
				return []string{b.Title, b.Excerpt, b.Author, b.Category, b.Tags}
			})
			pipe.SetSource(blogs)
			pipe.SetTerm(search)
			if category != "" {
				want := strings.ToLower(category)
				pipe.SetFilter("category", func(b model.Blog) bool {
					return strings.ToLower(b.Category) == want
				})
			}
			switch status {
			case "published":
				pipe.SetFilter("status", func(b model.Blog) bool { return b.Published })
			case "draft":
				pipe.SetFilter("status", func(b model.Blog) bool { return !b.Published })
			case "", "all":
			default:
				return fmt.Errorf("unknown status %q, expected published, draft or all", status)
			}
			switch sortKey {
			case "title":
				pipe.SetSort(pipeline.Alphabetical(func(b model.Blog) string { return b.Title }))
			case "newest":
				pipe.SetSort(pipeline.Newest(func(b model.Blog) time.Time { return b.CreatedAt }))
			case "type":
				pipe.SetSort(pipeline.ByRank(func(b model.Blog) int { return contentRank(b.Type()) }))
			case "":
			default:
				return fmt.Errorf("unknown sort %q, expected title, newest or type", sortKey)
			}
			pipe.GoToPage(page)

			view := pipe.View()
			return printJSON(cmd, listPayload{
				Items:      view.Items,
				Page:       view.Window.CurrentPage,
				TotalPages: view.Window.TotalPages(),
				TotalItems: view.Window.TotalItems,
			})
		},
	}
	cmd.Flags().StringVar(&search, "search", "", "Free-text search over title, excerpt, author, category and tags")
	cmd.Flags().StringVar(&category, "category", "", "Only articles in this category")
	cmd.Flags().StringVar(&status, "status", "all", "Filter by publish state: published, draft or all")
	cmd.Flags().StringVar(&sortKey, "sort", "", "Sort order: title, newest or type")
	cmd.Flags().IntVar(&page, "page", 1, "Page number")
	cmd.Flags().IntVar(&pageSize, "page-size", 0, "Items per page (defaults to the configured page size)")
	cmd.Flags().BoolVar(&serverPage, "server-page", false, "Delegate paging and search to the backend")
	return cmd
}

// runServerList delegates paging to the backend: /blog/page for plain
// listing, /blog/search when a keyword is set. The backend page index is
// zero-based.
func runServerList(cmd *cobra.Command, app *helpers.App, keyword string, page, size int) error {
	if page < 1 {
		page = 1
	}
	res, err := app.Client.Blogs().Page(cmd.Context(), api.PageParams{
		Page:    page - 1,
		Size:    size,
		Keyword: keyword,
	})
	if err != nil {
		return err
	}
	return printJSON(cmd, listPayload{
		Items:      res.Content,
		Page:       res.Number + 1,
		TotalPages: res.TotalPages,
		TotalItems: res.TotalElements,
	})
}

func runBrowse(ctx context.Context, app *helpers.App, pageSize int) error {
	columns := []tui.Column{
		{Title: "Titre", Width: 34},
		{Title: "Auteur", Width: 16},
		{Title: "Catégorie", Width: 14},
		{Title: "Type", Width: 6},
		{Title: "Publié", Width: 7},
	}
	load := func(ctx context.Context) ([]tui.Row, error) {
		blogs, err := app.Client.Blogs().List(ctx)
		if err != nil {
			return nil, err
		}
		rows := make([]tui.Row, len(blogs))
		for i, b := range blogs {
			published := "non"
			if b.Published {
				published = "oui"
			}
			rows[i] = tui.Row{
				ID:    b.ID,
				Cells: []string{b.Title, b.Author, b.Category, string(b.Type()), published},
			}
		}
		return rows, nil
	}
	m := tui.NewBrowse(ctx, "Articles", columns, pageSize, load)
	m.SetFilters([]tui.Filter{
		{Label: "Publiés", Pred: func(r tui.Row) bool { return cellAt(r, 4) == "oui" }},
		{Label: "Brouillons", Pred: func(r tui.Row) bool { return cellAt(r, 4) == "non" }},
		{Label: "Vidéos", Pred: func(r tui.Row) bool { return cellAt(r, 3) == string(model.ContentVideo) }},
	})
	_, err := tea.NewProgram(m, tea.WithAltScreen()).Run()
	return err
}

func cellAt(r tui.Row, i int) string {
	if i < len(r.Cells) {
		return r.Cells[i]
	}
	return ""
}

func getCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "get <id|slug>",
		Short: "Show one article by id or slug",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := helpers.AppFrom(cmd.Context())
			if err != nil {
				return err
			}
			var blog *model.Blog
			if id, idErr := strconv.ParseInt(args[0], 10, 64); idErr == nil {
				blog, err = app.Client.Blogs().Get(cmd.Context(), id)
			} else {
				blog, err = app.Client.Blogs().BySlug(cmd.Context(), args[0])
			}
			if err != nil {
				return err
			}
			return printJSON(cmd, blog)
		},
	}
}

func createCmd() *cobra.Command {
	var (
		title     string
		content   string
		author    string
		category  string
		youtube   string
		imagePath string
	)
	cmd := &cobra.Command{
		Use:   "create",
		Short: "Create an article (interactive form on a terminal, flags otherwise)",
		RunE: func(cmd *cobra.Command, _ []string) error {
			app, err := helpers.AppFrom(cmd.Context())
			if err != nil {
				return err
			}
			if helpers.ResolveMode(app.Config) == helpers.ModeTUI && title == "" {
				return tui.RunBlogForm(cmd.Context(), app, nil)
			}

			session := tui.NewBlogSession(app, nil)
			session.BeginCreate(model.Blog{Category: category, Active: true})
			session.SetField("title", func(d *model.Blog) { d.Title = title })
			session.SetField("content", func(d *model.Blog) { d.Content = content })
			session.SetField("author", func(d *model.Blog) { d.Author = author })
			session.SetField("youtubeUrl", func(d *model.Blog) { d.YoutubeURL = youtube })
			session.SetField("slug", func(d *model.Blog) { d.Slug = model.Slugify(title) })
			session.SetField("excerpt", func(d *model.Blog) { d.Excerpt = model.Excerpt(content, 150) })
			cleanup, err := stageImage(session, imagePath)
			if err != nil {
				return err
			}
			defer cleanup()

			saved, err := session.Submit(cmd.Context())
			if err != nil {
				return err
			}
			return printJSON(cmd, saved)
		},
	}
	cmd.Flags().StringVar(&title, "title", "", "Article title")
	cmd.Flags().StringVar(&content, "content", "", "Article body")
	cmd.Flags().StringVar(&author, "author", "", "Author name")
	cmd.Flags().StringVar(&category, "category", "General", "Category")
	cmd.Flags().StringVar(&youtube, "youtube", "", "YouTube URL for video articles")
	cmd.Flags().StringVar(&imagePath, "image", "", "Local image to upload before saving")
	return cmd
}

func updateCmd() *cobra.Command {
	var (
		title     string
		content   string
		author    string
		category  string
		youtube   string
		imagePath string
	)
	cmd := &cobra.Command{
		Use:   "update <id>",
		Short: "Update an article",
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
			existing, err := app.Client.Blogs().Get(cmd.Context(), id)
			if err != nil {
				return err
			}
			if helpers.ResolveMode(app.Config) == helpers.ModeTUI && !cmd.Flags().Changed("title") &&
				!cmd.Flags().Changed("content") {
				return tui.RunBlogForm(cmd.Context(), app, existing)
			}

			session := tui.NewBlogSession(app, nil)
			session.BeginEdit(*existing)
			if cmd.Flags().Changed("title") {
				session.SetField("title", func(d *model.Blog) { d.Title = title })
			}
			if cmd.Flags().Changed("content") {
				session.SetField("content", func(d *model.Blog) { d.Content = content })
			}
			if cmd.Flags().Changed("author") {
				session.SetField("author", func(d *model.Blog) { d.Author = author })
			}
			if cmd.Flags().Changed("category") {
				session.SetField("category", func(d *model.Blog) { d.Category = category })
			}
			if cmd.Flags().Changed("youtube") {
				session.SetField("youtubeUrl", func(d *model.Blog) { d.YoutubeURL = youtube })
			}
			cleanup, err := stageImage(session, imagePath)
			if err != nil {
				return err
			}
			defer cleanup()

			saved, err := session.Submit(cmd.Context())
			if err != nil {
				return err
			}
			return printJSON(cmd, saved)
		},
	}
	cmd.Flags().StringVar(&title, "title", "", "New title")
	cmd.Flags().StringVar(&content, "content", "", "New body")
	cmd.Flags().StringVar(&author, "author", "", "New author")
	cmd.Flags().StringVar(&category, "category", "", "New category")
	cmd.Flags().StringVar(&youtube, "youtube", "", "New YouTube URL")
	cmd.Flags().StringVar(&imagePath, "image", "", "Local image to upload before saving")
	return cmd
}

func deleteCmd() *cobra.Command {
	var yes bool
	cmd := &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete an article",
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
			existing, err := app.Client.Blogs().Get(cmd.Context(), id)
			if err != nil {
				return err
			}

			session := tui.NewBlogSession(app, nil)
			confirm := func(b model.Blog) bool {
				if yes {
					return true
				}
				if helpers.ResolveMode(app.Config) != helpers.ModeTUI {
					return false
				}
				ok, err := tui.ConfirmDelete(b.Title)
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

func publishCmd(publish bool) *cobra.Command {
	use, short := "publish <id>", "Publish an article"
	if !publish {
		use, short = "unpublish <id>", "Revert an article to draft"
	}
	return &cobra.Command{
		Use:   use,
		Short: short,
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
			var blog *model.Blog
			if publish {
				blog, err = app.Client.Blogs().Publish(cmd.Context(), id)
			} else {
				blog, err = app.Client.Blogs().Unpublish(cmd.Context(), id)
			}
			if err != nil {
				return err
			}
			return printJSON(cmd, blog)
		},
	}
}

func toggleCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "toggle <id>",
		Short: "Flip an article's active flag",
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
			blog, err := app.Client.Blogs().ToggleStatus(cmd.Context(), id)
			if err != nil {
				return err
			}
			return printJSON(cmd, blog)
		},
	}
}

func statsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "stats",
		Short: "Show the article counters",
		RunE: func(cmd *cobra.Command, _ []string) error {
			app, err := helpers.AppFrom(cmd.Context())
			if err != nil {
				return err
			}
			stats, err := app.Client.Blogs().Stats(cmd.Context())
			if err != nil {
				return err
			}
			return printJSON(cmd, stats)
		},
	}
}

func categoriesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "categories",
		Short: "List the known categories",
		RunE: func(cmd *cobra.Command, _ []string) error {
			app, err := helpers.AppFrom(cmd.Context())
			if err != nil {
				return err
			}
			out, err := app.Client.Blogs().Categories(cmd.Context())
			if err != nil {
				return err
			}
			return printJSON(cmd, out)
		},
	}
}

func authorsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "authors",
		Short: "List the known authors",
		RunE: func(cmd *cobra.Command, _ []string) error {
			app, err := helpers.AppFrom(cmd.Context())
			if err != nil {
				return err
			}
			out, err := app.Client.Blogs().Authors(cmd.Context())
			if err != nil {
				return err
			}
			return printJSON(cmd, out)
		},
	}
}

func contentRank(t model.ContentType) int {
	switch t {
	case model.ContentVideo:
		return 0
	case model.ContentImage:
		return 1
	default:
		return 2
	}
}

// stageImage queues a local file for the pre-save upload. The returned
// cleanup closes the file and must run after Submit.
func stageImage(session *form.Session[model.Blog], path string) (func(), error) {
	if path == "" {
		return func() {}, nil
	}
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open image: %w", err)
	}
	session.StageUpload(filepath.Base(path), file, func(d *model.Blog, asset *api.UploadedAsset) {
		d.ImageURL = asset.Filename
	})
	return func() { file.Close() }, nil
}

func printJSON(cmd *cobra.Command, data any) error {
	out, err := helpers.NewJSONFormatter(true).FormatSuccess(data)
	if err != nil {
		return err
	}
	fmt.Fprintln(cmd.OutOrStdout(), out)
	return nil
}
