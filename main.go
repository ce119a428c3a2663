package main

import (
	"html/template"
	"io"
	"log"
	"net/http"
	"os"
	"path/filepath"
	"strconv"
	"time"

	_ "github.com/joho/godotenv/autoload"

	"github.com/dustin/go-humanize"
	"github.com/gabriel-vasile/mimetype"
	"github.com/gin-gonic/gin"

	"github.com/Zachkp/portfolio/internal/admin"
	"github.com/Zachkp/portfolio/internal/contact"
	"github.com/Zachkp/portfolio/internal/content"
	"github.com/Zachkp/portfolio/internal/domain"
	"github.com/Zachkp/portfolio/internal/seed"
	"github.com/Zachkp/portfolio/internal/store"
	"github.com/Zachkp/portfolio/internal/verify"
)

// App wires the site's routes to a store.
type App struct {
	Config  SiteConfig
	Stores  func() (domain.Store, error)
	Contact *contact.Service
}

func main() {
	cfg, err := loadSiteConfig(".")
	if err != nil {
		log.Fatalf("Failed to load site config: %v", err)
	}

	var notifier contact.Notifier
	if n := contact.NewMailNotifier(cfg.Mail()); n != nil {
		notifier = n
		log.Println("Contact notifications enabled")
	}

	svc := contact.NewService(notifier)
	svc.SuccessDelay = cfg.ContactDelay

	app := &App{
		Config:  cfg,
		Stores:  store.Default,
		Contact: svc,
	}
	defer store.CloseDefault()

	initAdmin()

	r := app.Router(gin.Default())
	if err := r.Run(":" + cfg.Port); err != nil {
		log.Fatalf("Server stopped: %v", err)
	}
}

func templateFuncs() template.FuncMap {
	return template.FuncMap{
		"ago": humanize.Time,
		"date": func(t time.Time) string {
			return t.Format("Jan 2, 2006")
		},
		"inc": func(i int) int { return i + 1 },
		"ms":  func(d time.Duration) int64 { return d.Milliseconds() },
		"draft": func(list string, items []string) gin.H {
			return draftListData(admin.List(list), items, "")
		},
	}
}

// Router registers every route on r.
func (app *App) Router(r *gin.Engine) *gin.Engine {
	r.SetFuncMap(templateFuncs())
	r.LoadHTMLGlob(app.Config.Templates)

	r.Static("/static", app.Config.StaticDir)
	r.GET("/resume.pdf", app.resume)

	r.GET("/", app.home)
	r.GET("/projects/:index", app.projectDetail)
	r.GET("/experiences/:index", app.experienceDetail)

	r.GET("/contact-form", func(c *gin.Context) {
		c.HTML(http.StatusOK, "contact.html", app.contactData(&contact.Form{Status: contact.StatusIdle}))
	})
	r.POST("/contact", app.submitContact)

	r.POST("/api/init-db", verify.Handler(app.Stores))

	setupAdminRoutes(r, app)
	return r
}

// store returns the store or answers 500 when it cannot be opened.
func (app *App) store(c *gin.Context) (domain.Store, bool) {
	st, err := app.Stores()
	if err != nil {
		if store.IsConfigError(err) {
			log.Printf("Store is not configured: %v", err)
		} else {
			log.Printf("Error opening store: %v", err)
		}
		c.String(http.StatusInternalServerError, err.Error())
		return nil, false
	}
	return st, true
}

func (app *App) home(c *gin.Context) {
	st, ok := app.store(c)
	if !ok {
		return
	}
	page := content.Load(c.Request.Context(), st)

	c.HTML(http.StatusOK, "index.html", gin.H{
		"owner":       app.Config.OwnerName,
		"headline":    seed.Headline,
		"skills":      seed.Skills,
		"projects":    page.Projects,
		"experiences": page.Experiences,
		"contact":     app.contactData(&contact.Form{Status: contact.StatusIdle}),
	})
}

// detailIndex parses the :index param and checks it against n items.
func detailIndex(c *gin.Context, n int) (int, bool) {
	i, err := strconv.Atoi(c.Param("index"))
	if err != nil || i < 0 || i >= n {
		c.String(http.StatusNotFound, "Not found")
		return 0, false
	}
	return i, true
}

func (app *App) projectDetail(c *gin.Context) {
	st, ok := app.store(c)
	if !ok {
		return
	}
	page := content.Load(c.Request.Context(), st)
	i, ok := detailIndex(c, len(page.Projects))
	if !ok {
		return
	}
	c.HTML(http.StatusOK, "project-detail.html", gin.H{"project": page.Projects[i]})
}

func (app *App) experienceDetail(c *gin.Context) {
	st, ok := app.store(c)
	if !ok {
		return
	}
	page := content.Load(c.Request.Context(), st)
	i, ok := detailIndex(c, len(page.Experiences))
	if !ok {
		return
	}
	c.HTML(http.StatusOK, "experience-detail.html", gin.H{"experience": page.Experiences[i]})
}

func (app *App) contactData(f *contact.Form) gin.H {
	return gin.H{
		"form":         f,
		"status":       string(f.StatusAt(time.Now())),
		"successDelay": app.Contact.SuccessDelay,
	}
}

// Handle contact form submission with HTMX
func (app *App) submitContact(c *gin.Context) {
	var form contact.Form
	if err := c.ShouldBind(&form); err != nil {
		form.Status = contact.StatusIdle
		form.Error = "Please fill in every field."
		c.HTML(http.StatusOK, "contact.html", app.contactData(&form))
		return
	}

	st, ok := app.store(c)
	if !ok {
		return
	}

	app.Contact.Submit(c.Request.Context(), st, &form)
	c.HTML(http.StatusOK, "contact.html", app.contactData(&form))
}

func (app *App) resume(c *gin.Context) {
	path := app.Config.ResumePath
	f, err := os.Open(path)
	if err != nil {
		c.String(http.StatusNotFound, "Not found")
		return
	}
	defer f.Close()

	mtype, err := mimetype.DetectReader(f)
	if err != nil {
		log.Printf("Error detecting resume type: %v", err)
		c.String(http.StatusInternalServerError, "Failed to read resume")
		return
	}
	if _, err := f.Seek(0, io.SeekStart); err != nil {
		c.String(http.StatusInternalServerError, "Failed to read resume")
		return
	}

	info, err := f.Stat()
	if err != nil {
		c.String(http.StatusInternalServerError, "Failed to read resume")
		return
	}

	c.Header("Content-Disposition", "attachment; filename="+filepath.Base(path))
	c.DataFromReader(http.StatusOK, info.Size(), mtype.String(), f, nil)
}
