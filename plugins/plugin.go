package plugins

import (
	"github.com/gofiber/fiber/v2"
	"github.com/linht/rfclk/clocktree"
)

// Plugin interface that all plugins must implement
type Plugin interface {
	// Name returns the plugin identifier
	Name() string

	// RegisterRoutes adds the plugin's HTTP routes to the app
	RegisterRoutes(app *fiber.App)

	// Shutdown performs cleanup when the plugin is stopped
	Shutdown() error
}

// Env is what the process hands to plugin factories.
type Env struct {
	BringUp *clocktree.BringUp
	// Initial is the report of the start-up bring-up, if one ran.
	Initial *clocktree.Report
}

// PluginFactory creates a new plugin instance
type PluginFactory func(env Env) (Plugin, error)

var registry = make(map[string]PluginFactory)

// Register adds a plugin factory to the registry
func Register(name string, factory PluginFactory) {
	registry[name] = factory
}

// Get retrieves a plugin factory by name
func Get(name string) (PluginFactory, bool) {
	factory, exists := registry[name]
	return factory, exists
}

// APIResponse is the envelope of every plugin response.
type APIResponse struct {
	Success bool        `json:"success"`
	Data    interface{} `json:"data,omitempty"`
	Error   string      `json:"error,omitempty"`
	Message string      `json:"message,omitempty"`
}

// SendSuccess sends a successful response
func SendSuccess(c *fiber.Ctx, data interface{}, message string) error {
	return c.JSON(APIResponse{Success: true, Data: data, Message: message})
}

// SendError sends an error response with optional data attached
func SendError(c *fiber.Ctx, status int, err error, data interface{}) error {
	return c.Status(status).JSON(APIResponse{Success: false, Error: err.Error(), Data: data})
}
