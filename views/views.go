// Package views provides the default site templates as hand-built templ
// components. Sites that want their own look supply a ViewFuncs of their
// own instead.
package views

import (
	"context"
	"fmt"
	"html"
	"io"
	"time"

	"github.com/a-h/templ"

	"github.com/eringen/mealpress"
	"github.com/eringen/mealpress/markdown"
)

// Default returns the built-in set of view functions.
func Default() mealpress.ViewFuncs {
	return mealpress.ViewFuncs{
		Home:           Home,
		Recipe:         Recipe,
		Post:           Post,
		AdminLogin:     AdminLogin,
		AdminDashboard: AdminDashboard,
		NotFound:       NotFound,
		ServerError:    ServerError,
	}
}

func esc(s string) string { return html.EscapeString(s) }

// layout wraps page content in the shared document shell.
func layout(title string, cfg mealpress.SiteConfig, body templ.Component) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		if _, err := fmt.Fprintf(w, `<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="utf-8">
<meta name="viewport" content="width=device-width, initial-scale=1">
<title>%s | %s</title>
<meta name="description" content="%s">
<link rel="stylesheet" href="/public/style.css">
<script type="application/ld+json">%s</script>
</head>
<body>
<header><a href="/">%s</a> <a href="/admin/">Admin</a></header>
<main>`, esc(title), esc(cfg.Name), esc(cfg.Description), mealpress.WebsiteJsonLD(cfg), esc(cfg.Name)); err != nil {
			return err
		}
		if err := body.Render(ctx, w); err != nil {
			return err
		}
		_, err := fmt.Fprint(w, `</main>
<footer><a href="/feed.xml">RSS</a></footer>
</body>
</html>`)
		return err
	})
}

func recordList(w io.Writer, heading string, records []mealpress.ContentRecord) error {
	if _, err := fmt.Fprintf(w, `<section><h2>%s</h2><ul>`, esc(heading)); err != nil {
		return err
	}
	for _, rec := range records {
		date := rec.Date
		if t, err := time.Parse(time.RFC3339, rec.Date); err == nil {
			date = t.Format("January 2, 2006")
		}
		if _, err := fmt.Fprintf(w, `<li><a href="%s">%s</a> <time>%s</time><p>%s</p></li>`,
			esc(rec.Link()), esc(rec.Title), esc(date), esc(rec.Description)); err != nil {
			return err
		}
	}
	_, err := fmt.Fprint(w, `</ul></section>`)
	return err
}

// Home lists published recipes and posts.
func Home(recipes, posts []mealpress.ContentRecord, cfg mealpress.SiteConfig) templ.Component {
	return layout(cfg.Name, cfg, templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		if err := recordList(w, "Recipes", recipes); err != nil {
			return err
		}
		return recordList(w, "From the blog", posts)
	}))
}

// Recipe renders a single recipe page: facts table, ingredients,
// instructions, nutrition, then the markdown body.
func Recipe(rec mealpress.ContentRecord, cfg mealpress.SiteConfig) templ.Component {
	return layout(rec.Title, cfg, templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		if _, err := fmt.Fprintf(w, `<article><h1>%s</h1><p>%s</p>
<script type="application/ld+json">%s</script>`,
			esc(rec.Title), esc(rec.Description), mealpress.RecordJsonLD(rec, cfg)); err != nil {
			return err
		}
		fmt.Fprint(w, `<dl>`)
		for _, fact := range [][2]string{
			{"Prep time", rec.PrepTime},
			{"Cook time", rec.CookTime},
			{"Difficulty", rec.Difficulty},
		} {
			if fact[1] != "" {
				fmt.Fprintf(w, `<dt>%s</dt><dd>%s</dd>`, esc(fact[0]), esc(fact[1]))
			}
		}
		if rec.Servings > 0 {
			fmt.Fprintf(w, `<dt>Servings</dt><dd>%d</dd>`, rec.Servings)
		}
		fmt.Fprint(w, `</dl><h2>Ingredients</h2><ul>`)
		for _, ing := range rec.Ingredients {
			fmt.Fprintf(w, `<li>%s</li>`, esc(ing))
		}
		fmt.Fprint(w, `</ul><h2>Instructions</h2><ol>`)
		for _, step := range rec.Instructions {
			fmt.Fprintf(w, `<li>%s</li>`, esc(step))
		}
		fmt.Fprint(w, `</ol>`)
		if n := rec.Nutrition; n != (mealpress.Nutrition{}) {
			fmt.Fprint(w, `<h2>Nutrition</h2><table>`)
			for _, row := range [][2]string{
				{"Calories", n.Calories},
				{"Protein", n.Protein},
				{"Carbs", n.Carbs},
				{"Fat", n.Fat},
			} {
				if row[1] != "" {
					fmt.Fprintf(w, `<tr><th>%s</th><td>%s</td></tr>`, esc(row[0]), esc(row[1]))
				}
			}
			fmt.Fprint(w, `</table>`)
		}
		if rec.Body != "" {
			if err := markdown.Markdown(rec.Body).Render(ctx, w); err != nil {
				return err
			}
		}
		_, err := fmt.Fprint(w, `</article>`)
		return err
	}))
}

// Post renders a single blog post page.
func Post(rec mealpress.ContentRecord, cfg mealpress.SiteConfig) templ.Component {
	return layout(rec.Title, cfg, templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		if _, err := fmt.Fprintf(w, `<article><h1>%s</h1><p>%s</p>
<script type="application/ld+json">%s</script>`,
			esc(rec.Title), esc(rec.Description), mealpress.RecordJsonLD(rec, cfg)); err != nil {
			return err
		}
		if err := markdown.Markdown(rec.Body).Render(ctx, w); err != nil {
			return err
		}
		_, err := fmt.Fprint(w, `</article>`)
		return err
	}))
}

// AdminLogin renders the login form, which posts to the JSON login
// endpoint from a small inline script.
func AdminLogin(cfg mealpress.SiteConfig) templ.Component {
	return layout("Admin", cfg, templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		_, err := fmt.Fprint(w, `<h1>Sign in</h1>
<form id="login">
<label>Username <input name="username" autocomplete="username"></label>
<label>Password <input name="password" type="password" autocomplete="current-password"></label>
<button type="submit">Sign in</button>
</form>
<script>
document.getElementById("login").addEventListener("submit", async function (e) {
	e.preventDefault();
	const data = Object.fromEntries(new FormData(e.target));
	const res = await fetch("/api/login", {
		method: "POST",
		headers: {"Content-Type": "application/json"},
		body: JSON.stringify(data),
	});
	if (res.ok) { location.reload(); } else { alert("Login failed"); }
});
</script>`)
		return err
	}))
}

// AdminDashboard lists every record of both kinds, drafts included.
func AdminDashboard(recipes, posts []mealpress.ContentRecord, cfg mealpress.SiteConfig) templ.Component {
	return layout("Dashboard", cfg, templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		fmt.Fprint(w, `<h1>Dashboard</h1><p><a href="/api/admin/logout">Log out</a></p>`)
		for _, group := range []struct {
			heading string
			records []mealpress.ContentRecord
		}{
			{"Recipes", recipes},
			{"Posts", posts},
		} {
			fmt.Fprintf(w, `<h2>%s</h2><table><tr><th>Title</th><th>Slug</th><th>Status</th><th>Date</th></tr>`, esc(group.heading))
			for _, rec := range group.records {
				fmt.Fprintf(w, `<tr><td><a href="%s">%s</a></td><td>%s</td><td>%s</td><td>%s</td></tr>`,
					esc(rec.Link()), esc(rec.Title), esc(rec.Slug), esc(string(rec.Status)), esc(rec.Date))
			}
			fmt.Fprint(w, `</table>`)
		}
		return nil
	}))
}

// NotFound is the 404 page.
func NotFound(cfg mealpress.SiteConfig) templ.Component {
	return layout("Not found", cfg, templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		_, err := fmt.Fprint(w, `<h1>Page not found</h1><p><a href="/">Back to the kitchen</a></p>`)
		return err
	}))
}

// ServerError is the 500 page.
func ServerError(cfg mealpress.SiteConfig) templ.Component {
	return layout("Something went wrong", cfg, templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		_, err := fmt.Fprint(w, `<h1>Something went wrong</h1><p>Please try again in a moment.</p>`)
		return err
	}))
}
