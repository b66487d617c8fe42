package views

import (
	"embed"
	"html/template"
	"io"

	"inkwell/inkwell/sources/psql/models"
)

//go:embed templates/*.html
var files embed.FS

var tmpls = template.Must(template.ParseFS(files, "templates/*.html"))

// Render writes the named page. name is the template file without the .html
// suffix.
func Render(w io.Writer, name string, data any) error {
	return tmpls.ExecuteTemplate(w, name+".html", data)
}

type Page struct {
	User *models.User
}

type HomePage struct {
	User         *models.User
	FeaturedPost *models.PostWithAuthor
	Posts        []models.PostWithAuthor
}

type PostListPage struct {
	User  *models.User
	Posts []models.PostWithAuthor
}

type PostDetailPage struct {
	User *models.User
	Post *models.PostWithAuthor
}

type EditPostPage struct {
	User *models.User
	Post *models.Post
}
