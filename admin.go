// admin.go - content dashboard behind the session guard
package main

import (
	"crypto/rand"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"log"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/Zachkp/portfolio/internal/admin"
	"github.com/Zachkp/portfolio/internal/domain"
	"github.com/Zachkp/portfolio/internal/guard"
)

var hashingSalt string

// Initialize admin logging with a per-process salt
func initAdmin() {
	hashingSalt = generateSalt()
	log.Printf("Admin dashboard available at: /admin")
}

func generateSalt() string {
	bytes := make([]byte, 32)
	if _, err := rand.Read(bytes); err != nil {
		log.Fatal("Failed to generate salt:", err)
	}
	return hex.EncodeToString(bytes)
}

// Hash IP address so admin action logs never hold a raw address
func hashIP(ip string) string {
	hash := sha256.New()
	hash.Write([]byte(ip + hashingSalt))
	return hex.EncodeToString(hash.Sum(nil))[:16]
}

// sessions hands the guard the store's session lookup, if it has one.
func (app *App) sessions() (domain.SessionResolver, error) {
	st, err := app.Stores()
	if err != nil {
		return nil, err
	}
	if r, ok := st.(domain.SessionResolver); ok {
		return r, nil
	}
	return nil, nil
}

// dashboard opens a freshly loaded dashboard for this request.
func (app *App) dashboard(c *gin.Context, tab admin.Tab) (*admin.Dashboard, bool) {
	st, ok := app.store(c)
	if !ok {
		return nil, false
	}
	d := admin.NewDashboard(st)
	d.Tab = tab
	d.Reload(c.Request.Context())
	return d, true
}

func editorView[T any](e *admin.Editor[T]) gin.H {
	draft, _ := e.Draft()
	return gin.H{
		"mode":   e.Mode().String(),
		"editID": e.EditID(),
		"draft":  draft,
	}
}

func dashboardView(d *admin.Dashboard, alert string) gin.H {
	errs := make(map[string]string, len(d.Data.Errors))
	for c, err := range d.Data.Errors {
		errs[string(c)] = err.Error()
	}
	return gin.H{
		"title":       "Admin Dashboard",
		"tab":         string(d.Tab),
		"stats":       d.Stats(),
		"projects":    d.Data.Projects,
		"experiences": d.Data.Experiences,
		"messages":    d.Data.Messages,
		"loadErrors":  errs,
		"project":     editorView(d.Projects),
		"experience":  editorView(d.Experiences),
		"alert":       alert,
	}
}

// renderDashboard always answers 200: htmx only swaps successful
// responses, and the alert has to reach the page.
func renderDashboard(c *gin.Context, d *admin.Dashboard, alert string) {
	c.HTML(http.StatusOK, "admin-dashboard.html", dashboardView(d, alert))
}

// alertText is what the admin sees for a failed write.
func alertText(err error) string {
	var a *admin.Alert
	if errors.As(err, &a) {
		return a.Error()
	}
	return err.Error()
}

// editorRoutes registers the create, edit and delete screens of one
// collection under /admin/<tab>.
type editorRoutes[T any] struct {
	tab    admin.Tab
	editor func(*admin.Dashboard) *admin.Editor[T]
	find   func(*admin.Dashboard, string) (T, bool)
}

func (er editorRoutes[T]) noun() string {
	return strings.TrimSuffix(string(er.tab), "s")
}

func (er editorRoutes[T]) register(g *gin.RouterGroup, app *App) {
	base := "/" + string(er.tab)

	g.GET(base+"/new", func(c *gin.Context) {
		d, ok := app.dashboard(c, er.tab)
		if !ok {
			return
		}
		er.editor(d).New()
		renderDashboard(c, d, "")
	})

	g.GET(base+"/:id/edit", func(c *gin.Context) {
		d, ok := app.dashboard(c, er.tab)
		if !ok {
			return
		}
		id := c.Param("id")
		row, found := er.find(d, id)
		if !found {
			renderDashboard(c, d, "Could not find that "+er.noun())
			return
		}
		er.editor(d).Edit(id, row)
		renderDashboard(c, d, "")
	})

	save := func(c *gin.Context, id string) {
		d, ok := app.dashboard(c, er.tab)
		if !ok {
			return
		}
		e := er.editor(d)
		if id == "" {
			e.New()
		} else {
			var zero T
			e.Edit(id, zero)
		}

		var row T
		bindErr := c.ShouldBind(&row)
		// The draft keeps whatever was typed so the form re-renders intact.
		_ = e.SetDraft(row)
		if bindErr != nil {
			renderDashboard(c, d, "Please fill in every required field")
			return
		}

		if err := e.Submit(c.Request.Context()); err != nil {
			renderDashboard(c, d, alertText(err))
			return
		}

		action := "created"
		if id != "" {
			action = "updated"
		}
		log.Printf("%s %s by admin from %s", er.tab, action, hashIP(c.ClientIP()))
		renderDashboard(c, d, "")
	}

	g.POST(base, func(c *gin.Context) { save(c, "") })
	g.POST(base+"/:id", func(c *gin.Context) { save(c, c.Param("id")) })

	g.GET(base+"/:id/delete", func(c *gin.Context) {
		c.HTML(http.StatusOK, "admin-confirm.html", gin.H{
			"tab":    string(er.tab),
			"id":     c.Param("id"),
			"action": base + "/" + c.Param("id") + "/delete",
		})
	})

	g.POST(base+"/:id/delete", func(c *gin.Context) {
		d, ok := app.dashboard(c, er.tab)
		if !ok {
			return
		}
		id := c.Param("id")
		confirmed := c.PostForm("confirm") == "yes"
		if err := er.editor(d).Delete(c.Request.Context(), id, confirmed); err != nil {
			renderDashboard(c, d, alertText(err))
			return
		}
		if confirmed {
			log.Printf("%s %s deleted by admin from %s", er.tab, id, hashIP(c.ClientIP()))
		}
		renderDashboard(c, d, "")
	})
}

func draftListData(l admin.List, items []string, input string) gin.H {
	return gin.H{
		"list":  string(l),
		"items": items,
		"key":   string(l.AddKey()),
		"input": input,
	}
}

// Setup all admin routes
func setupAdminRoutes(r *gin.Engine, app *App) {
	adminGroup := r.Group("/admin")
	adminGroup.Use(guard.Middleware(app.sessions, app.Config.Policy()))

	adminGroup.GET("", func(c *gin.Context) {
		d, ok := app.dashboard(c, admin.ParseTab(c.Query("tab")))
		if !ok {
			return
		}
		renderDashboard(c, d, "")
	})

	editorRoutes[domain.Project]{
		tab:    admin.TabProjects,
		editor: func(d *admin.Dashboard) *admin.Editor[domain.Project] { return d.Projects },
		find:   (*admin.Dashboard).FindProject,
	}.register(adminGroup, app)

	editorRoutes[domain.Experience]{
		tab:    admin.TabExperiences,
		editor: func(d *admin.Dashboard) *admin.Editor[domain.Experience] { return d.Experiences },
		find:   (*admin.Dashboard).FindExperience,
	}.register(adminGroup, app)

	adminGroup.POST("/drafts/:list/add", func(c *gin.Context) {
		l, ok := admin.ParseList(c.Param("list"))
		if !ok {
			c.String(http.StatusNotFound, "Unknown list")
			return
		}
		input := c.PostForm("input")
		items, added := admin.AddOnKey(l, c.PostFormArray(string(l)), input, admin.Key(c.PostForm("key")))
		if added {
			input = ""
		}
		c.HTML(http.StatusOK, "draft-list.html", draftListData(l, items, input))
	})

	adminGroup.POST("/drafts/:list/remove", func(c *gin.Context) {
		l, ok := admin.ParseList(c.Param("list"))
		if !ok {
			c.String(http.StatusNotFound, "Unknown list")
			return
		}
		i, err := strconv.Atoi(c.PostForm("index"))
		if err != nil {
			i = -1
		}
		items := admin.Remove(c.PostFormArray(string(l)), i)
		c.HTML(http.StatusOK, "draft-list.html", draftListData(l, items, c.PostForm("input")))
	})

	// Export every collection (for backups)
	adminGroup.GET("/export", func(c *gin.Context) {
		d, ok := app.dashboard(c, admin.TabProjects)
		if !ok {
			return
		}

		c.Header("Content-Disposition", "attachment; filename=portfolio-export.json")

		log.Printf("Content exported by %s", hashIP(c.ClientIP()))
		c.JSON(http.StatusOK, d.Export())
	})
}
