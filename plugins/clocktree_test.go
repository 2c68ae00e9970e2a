package plugins

import (
	"encoding/json"
	"errors"
	"io"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/linht/rfclk/clocktree"
	"github.com/linht/rfclk/hardware"
)

type nopLines struct{}

func (nopLines) Export(int) error                           { return nil }
func (nopLines) SetDirection(int, hardware.Direction) error { return nil }
func (nopLines) SetLevel(int, int) error                    { return nil }
func (nopLines) Close() error                               { return nil }

type echoChannel struct {
	path  string
	value byte
}

func (c *echoChannel) Tx(w, r []byte) (int, error) {
	r[2] = c.value
	return len(w), nil
}
func (c *echoChannel) Close() error   { return nil }
func (c *echoChannel) String() string { return c.path }

type mapOpener map[string]*echoChannel

func (o mapOpener) Open(path string, _ hardware.ChannelConfig) (hardware.Channel, error) {
	ch, ok := o[path]
	if !ok {
		return nil, errors.New("no such device")
	}
	return ch, nil
}

func newTestApp(t *testing.T, opener hardware.Opener, readback bool) *fiber.App {
	t.Helper()
	b := &clocktree.BringUp{
		Lines:       nopLines{},
		ControlLine: clocktree.DefaultControlLines(),
		Opener:      opener,
		Channel:     hardware.DefaultChannelConfig(),
		Devices: clocktree.Devices{
			Conditioner:  "lmk",
			Synthesizers: [2]string{"lmx1", "lmx2"},
		},
		Conditioner: clocktree.DefaultConditionerImage(),
		Synthesizer: clocktree.DefaultSynthesizerImage(),
		Readback:    clocktree.Readback{Enabled: readback, Address: clocktree.RegDeviceType},
		Sleep:       func(time.Duration) {},
	}

	factory, ok := Get("clocktree")
	if !ok {
		t.Fatal("clocktree plugin not registered")
	}
	plugin, err := factory(Env{BringUp: b})
	if err != nil {
		t.Fatal(err)
	}
	app := fiber.New()
	plugin.RegisterRoutes(app)
	return app
}

func allDevices() mapOpener {
	return mapOpener{
		"lmk":  {path: "lmk", value: 0x06},
		"lmx1": {path: "lmx1"},
		"lmx2": {path: "lmx2"},
	}
}

func do(t *testing.T, app *fiber.App, method, path string) (int, APIResponse) {
	t.Helper()
	resp, err := app.Test(httptest.NewRequest(method, path, nil))
	if err != nil {
		t.Fatalf("%s %s: %v", method, path, err)
	}
	defer resp.Body.Close()
	body, _ := io.ReadAll(resp.Body)
	var out APIResponse
	if err := json.Unmarshal(body, &out); err != nil {
		t.Fatalf("%s %s: bad body %q: %v", method, path, body, err)
	}
	return resp.StatusCode, out
}

func TestStatusBeforeBringUp(t *testing.T) {
	app := newTestApp(t, allDevices(), false)
	if code, _ := do(t, app, "GET", "/api/clocktree/status"); code != 404 {
		t.Fatalf("status = %d, want 404", code)
	}
}

func TestBringUpThenStatus(t *testing.T) {
	app := newTestApp(t, allDevices(), false)

	code, resp := do(t, app, "POST", "/api/clocktree/bringup")
	if code != 200 || !resp.Success {
		t.Fatalf("bringup = %d %+v", code, resp)
	}

	code, resp = do(t, app, "GET", "/api/clocktree/status")
	if code != 200 {
		t.Fatalf("status = %d", code)
	}
	report, _ := resp.Data.(map[string]interface{})
	images, _ := report["images"].([]interface{})
	if len(images) != 3 {
		t.Fatalf("report images = %v", report["images"])
	}
}

func TestBringUpOpenFailure(t *testing.T) {
	opener := allDevices()
	delete(opener, "lmk")
	app := newTestApp(t, opener, false)

	code, resp := do(t, app, "POST", "/api/clocktree/bringup")
	if code != 500 || resp.Success || resp.Error == "" {
		t.Fatalf("bringup = %d %+v", code, resp)
	}
}

func TestImages(t *testing.T) {
	app := newTestApp(t, allDevices(), false)
	code, resp := do(t, app, "GET", "/api/clocktree/images")
	if code != 200 {
		t.Fatalf("images = %d", code)
	}
	list, _ := resp.Data.([]interface{})
	if len(list) != 2 {
		t.Fatalf("images = %v", resp.Data)
	}
	lmx, _ := list[1].(map[string]interface{})
	if lmx["last"] != "0x00241C" || lmx["entries"] != float64(113) {
		t.Fatalf("synthesizer summary = %v", lmx)
	}
}

func TestReadRegister(t *testing.T) {
	app := newTestApp(t, allDevices(), false)
	if code, _ := do(t, app, "GET", "/api/clocktree/conditioner/register/0x003"); code != 403 {
		t.Fatalf("read with read-back disabled = %d, want 403", code)
	}

	app = newTestApp(t, allDevices(), true)
	code, resp := do(t, app, "GET", "/api/clocktree/conditioner/register/0x003")
	if code != 200 {
		t.Fatalf("read = %d %+v", code, resp)
	}
	data, _ := resp.Data.(map[string]interface{})
	if data["hex"] != "0x06" {
		t.Fatalf("read data = %v", data)
	}

	if code, _ := do(t, app, "GET", "/api/clocktree/conditioner/register/0x2000"); code != 400 {
		t.Fatalf("read of 0x2000 = %d, want 400", code)
	}
}
