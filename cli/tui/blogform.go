package tui

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/huh"

	"github.com/mssd/mssd-console/cli/helpers"
	"github.com/mssd/mssd-console/internal/api"
	"github.com/mssd/mssd-console/internal/form"
	"github.com/mssd/mssd-console/internal/model"
)

// BlogFields declares the validated blog draft fields.
func BlogFields() []form.Field[model.Blog] {
	return []form.Field[model.Blog]{
		{Name: "title", Rule: "required", Value: func(b model.Blog) any { return b.Title }},
		{Name: "content", Rule: "required", Value: func(b model.Blog) any { return b.Content }},
		{Name: "author", Rule: "required", Value: func(b model.Blog) any { return b.Author }},
		{Name: "youtubeUrl", Rule: "omitempty,url", Value: func(b model.Blog) any { return b.YoutubeURL }},
	}
}

// NewBlogSession wires a blog form session to the gateway. The refresh
// hook re-fetches the admin list and stats so the screen shows server
// state after every save.
func NewBlogSession(app *helpers.App, onRefresh func([]model.Blog, *model.BlogStats)) *form.Session[model.Blog] {
	blogs := app.Client.Blogs()
	return form.NewSession(BlogFields(), form.Hooks[model.Blog]{
		Create: blogs.Create,
		Update: blogs.Update,
		Delete: blogs.Delete,
		Upload: app.Client.Files().Upload,
		Refresh: func(ctx context.Context) error {
			list, err := blogs.List(ctx)
			if err != nil {
				return err
			}
			stats, err := blogs.Stats(ctx)
			if err != nil {
				return err
			}
			if onRefresh != nil {
				onRefresh(list, stats)
			}
			return nil
		},
	})
}

// RunBlogForm drives an interactive create or edit flow. existing nil
// means create.
func RunBlogForm(ctx context.Context, app *helpers.App, existing *model.Blog) error {
	session := NewBlogSession(app, nil)
	if existing != nil {
		session.BeginEdit(*existing)
	} else {
		session.BeginCreate(model.Blog{Category: "General", Active: true})
	}

	draft := session.Draft()
	imagePath := ""

	required := func(name string) func(string) error {
		return func(string) error {
			if msg := session.FieldError(name); msg != "" {
				return fmt.Errorf("%s", msg)
			}
			return nil
		}
	}

	f := huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Titre").
				Value(&draft.Title).
				Validate(func(v string) error {
					session.SetField("title", func(d *model.Blog) { d.Title = v })
					return required("title")(v)
				}),
			huh.NewText().
				Title("Contenu").
				Value(&draft.Content).
				Validate(func(v string) error {
					session.SetField("content", func(d *model.Blog) { d.Content = v })
					return required("content")(v)
				}),
			huh.NewInput().
				Title("Auteur").
				Value(&draft.Author).
				Validate(func(v string) error {
					session.SetField("author", func(d *model.Blog) { d.Author = v })
					return required("author")(v)
				}),
			huh.NewInput().
				Title("Catégorie").
				Value(&draft.Category),
			huh.NewInput().
				Title("URL YouTube (optionnel)").
				Value(&draft.YoutubeURL).
				Validate(func(v string) error {
					session.SetField("youtubeUrl", func(d *model.Blog) { d.YoutubeURL = v })
					return required("youtubeUrl")(v)
				}),
			huh.NewInput().
				Title("Image locale à téléverser (optionnel)").
				Placeholder("/chemin/vers/image.jpg").
				Value(&imagePath),
		),
	)

	if err := f.RunWithContext(ctx); err != nil {
		session.Cancel()
		return err
	}

	session.SetField("category", func(d *model.Blog) { d.Category = draft.Category })
	if draft.Slug == "" {
		session.SetField("slug", func(d *model.Blog) { d.Slug = model.Slugify(draft.Title) })
	}
	if draft.Excerpt == "" {
		session.SetField("excerpt", func(d *model.Blog) { d.Excerpt = model.Excerpt(draft.Content, 150) })
	}

	if strings.TrimSpace(imagePath) != "" {
		file, err := os.Open(imagePath)
		if err != nil {
			return fmt.Errorf("failed to open image: %w", err)
		}
		defer file.Close()
		session.StageUpload(filepath.Base(imagePath), file, func(d *model.Blog, asset *api.UploadedAsset) {
			d.ImageURL = asset.Filename
		})
	}

	saved, err := session.Submit(ctx)
	if err != nil {
		app.Toasts.Error("Erreur lors de l'enregistrement de l'article.")
		return err
	}
	if existing != nil {
		app.Toasts.Success("Article mis à jour avec succès!")
	} else {
		app.Toasts.Success("Article créé avec succès!")
	}
	fmt.Printf("Enregistré: #%d %s\n", saved.ID, saved.Title)
	return nil
}

// ConfirmDelete asks the user to confirm a destructive action.
func ConfirmDelete(label string) (bool, error) {
	confirmed := false
	err := huh.NewConfirm().
		Title(fmt.Sprintf("Supprimer %q ?", label)).
		Affirmative("Supprimer").
		Negative("Annuler").
		Value(&confirmed).
		Run()
	if err != nil {
		return false, err
	}
	return confirmed, nil
}
