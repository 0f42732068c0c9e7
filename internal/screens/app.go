package screens

import (
	"github.com/jonathan/jobpilot/internal/ingestion"
	"github.com/jonathan/jobpilot/internal/types"
)

// Options configures the controllers that need more than Env.
type Options struct {
	EmailPolicy   types.EmailPolicy
	PhotoMaxBytes int64
	URL           ingestion.URLOptions
	Printer       PDFPrinter
}

// App bundles one controller per screen over a shared Env.
type App struct {
	CVs       *CVManager
	Tools     *AITools
	Dashboard *Dashboard
	Leads     *LeadFinder
	Studio    *CreativeStudio
	Layouts   *Layouts
	Photo     *Photo
	History   *History
	Settings  *Settings
}

// NewApp creates every controller.
func NewApp(env Env, opts Options) *App {
	env = env.withDefaults()
	layouts := NewLayouts(env, opts.Printer)
	cvs := NewCVManager(env)
	cvs.ShareLayouts(layouts)
	return &App{
		CVs:       cvs,
		Tools:     NewAITools(env, opts.URL),
		Dashboard: NewDashboard(env),
		Leads:     NewLeadFinder(env, opts.EmailPolicy),
		Studio:    NewCreativeStudio(env),
		Layouts:   layouts,
		Photo:     NewPhoto(env, opts.PhotoMaxBytes),
		History:   NewHistory(env),
		Settings:  NewSettings(env),
	}
}
