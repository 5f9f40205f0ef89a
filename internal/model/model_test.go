package model

import (
	"testing"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
)

func TestBlog_Type(t *testing.T) {
	t.Run("Should prefer video over image", func(t *testing.T) {
		b := Blog{YoutubeURL: "https://youtu.be/abc", ImageURL: "uploads/a.jpg"}
		assert.Equal(t, ContentVideo, b.Type())
	})

	t.Run("Should report image when only an image is set", func(t *testing.T) {
		assert.Equal(t, ContentImage, Blog{ImageURL: "uploads/a.jpg"}.Type())
	})

	t.Run("Should fall back to text", func(t *testing.T) {
		assert.Equal(t, ContentText, Blog{}.Type())
	})
}

func TestSlugify(t *testing.T) {
	t.Run("Should normalize accents and spacing", func(t *testing.T) {
		assert.Equal(t, "formation-securite-2026", Slugify("Formation Sécurité   2026"))
	})
}

func TestExcerpt(t *testing.T) {
	t.Run("Should strip tags and truncate", func(t *testing.T) {
		got := Excerpt("<p>Hello <b>world</b>, this is the article body</p>", 11)
		assert.Equal(t, "Hello world...", got)
	})

	t.Run("Should return short content unchanged", func(t *testing.T) {
		assert.Equal(t, "Hello", Excerpt("<p>Hello</p>", 150))
	})

	t.Run("Should truncate accented text on a character boundary", func(t *testing.T) {
		got := Excerpt("aaaaé suite du texte", 5)
		assert.Equal(t, "aaaaé...", got)
		assert.True(t, utf8.ValidString(got))
	})

	t.Run("Should count characters rather than bytes", func(t *testing.T) {
		assert.Equal(t, "éléphant", Excerpt("éléphant", 8))
	})
}
