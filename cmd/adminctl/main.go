// cmd/adminctl/main.go

// adminctl is the operator console: a line-oriented terminal front end
// over the dashboard controller, talking to a running adminhub server.
package main

import (
	"bufio"
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"net/http"
	"os"
	"sort"
	"strings"

	"github.com/gashatech/adminhub/internal/console/api"
	"github.com/gashatech/adminhub/internal/console/dashboard"
	"github.com/gashatech/adminhub/internal/console/forms"
	"github.com/gashatech/adminhub/internal/console/services"
	"go.uber.org/zap"
)

func main() {
	apiURL := flag.String("api", "http://localhost:8080", "adminhub API base URL")
	tokenPath := flag.String("token-file", "", "bearer token file (default ~/.adminhub/token)")
	verbose := flag.Bool("verbose", false, "log client activity to stderr")
	flag.Parse()

	logger := zap.NewNop()
	if *verbose {
		var err error
		if logger, err = zap.NewDevelopment(); err != nil {
			log.Fatal(err)
		}
	}
	defer logger.Sync()

	path := *tokenPath
	if path == "" {
		var err error
		if path, err = api.DefaultTokenPath(); err != nil {
			log.Fatal(err)
		}
	}

	client := api.New(*apiURL, api.NewFileTokenStore(path), logger)
	stdin := bufio.NewReader(os.Stdin)

	ctrl := dashboard.New(
		dashboard.NewServices(client),
		terminalNotifier{},
		&terminalConfirmer{in: stdin},
		logger,
	)

	c := &console{client: client, ctrl: ctrl, in: stdin}
	c.run(context.Background())
}

// terminalNotifier prints controller outcomes to the terminal.
type terminalNotifier struct{}

func (terminalNotifier) Info(msg string)  { fmt.Println(msg) }
func (terminalNotifier) Alert(msg string) { fmt.Fprintln(os.Stderr, "error:", msg) }

// terminalConfirmer prompts y/N on the shared stdin reader.
type terminalConfirmer struct {
	in *bufio.Reader
}

func (c *terminalConfirmer) Confirm(prompt string) bool {
	fmt.Printf("%s [y/N] ", prompt)
	line, err := c.in.ReadString('\n')
	if err != nil {
		return false
	}
	answer := strings.ToLower(strings.TrimSpace(line))
	return answer == "y" || answer == "yes"
}

type console struct {
	client *api.Client
	ctrl   *dashboard.Controller
	in     *bufio.Reader
}

func (c *console) run(ctx context.Context) {
	if c.client.Token() != "" {
		fmt.Println("using stored session; `whoami` to verify, `login` to replace")
	}
	fmt.Println(`type "help" for commands`)

	for {
		fmt.Print("adminhub> ")
		line, err := c.in.ReadString('\n')
		if err != nil {
			fmt.Println()
			return
		}
		args := strings.Fields(line)
		if len(args) == 0 {
			continue
		}

		switch args[0] {
		case "quit", "exit":
			return
		case "help":
			c.help()
		case "login":
			c.login(ctx, args[1:])
		case "logout":
			c.client.ClearToken()
			fmt.Println("signed out")
		case "whoami":
			c.whoami(ctx)
		case "refresh":
			c.ctrl.RefreshAll(ctx)
			fmt.Println("refreshed")
		case "overview":
			c.overview(ctx)
		case "modules":
			c.modules(ctx)
		case "module":
			c.module(ctx, args[1:])
		case "products":
			c.products(ctx, args[1:])
		case "product":
			c.product(ctx, args[1:])
		case "users":
			c.users(ctx)
		case "admin":
			c.admin(ctx, args[1:])
		case "toggle":
			if len(args) != 2 {
				fmt.Println("usage: toggle <user-id>")
				continue
			}
			if c.ctrl.ToggleUserStatus(ctx, args[1]) == nil {
				fmt.Println("status updated")
			}
		case "user":
			if len(args) == 3 && args[1] == "rm" {
				c.ctrl.DeleteUser(ctx, args[2])
			} else {
				fmt.Println("usage: user rm <id>")
			}
		case "requests":
			c.requests(ctx)
		default:
			fmt.Printf("unknown command %q; type \"help\"\n", args[0])
		}
	}
}

func (c *console) help() {
	fmt.Print(`commands:
  login <email> <password>       sign in and store the token
  logout                         forget the stored token
  whoami                         show the signed-in operator
  refresh                        reload every list
  overview                       derived statistics
  modules                        list modules
  module add <display name...>   create a module
  module rm <id>                 delete a module (cascades)
  products <module-slug>         list a module's products
  product add <category> <name...>  add a product to the open module
  product rm <id>                delete a product
  users                          list operators
  admin add <email> <password> <role> <module|-> <full name...>
  toggle <user-id>               flip active/inactive
  user rm <id>                   delete an operator
  requests                       list download requests
  quit
`)
}

func (c *console) login(ctx context.Context, args []string) {
	if len(args) != 2 {
		fmt.Println("usage: login <email> <password>")
		return
	}

	env := c.client.Do(ctx, http.MethodPost, "/api/auth/login", map[string]string{
		"email":    args[0],
		"password": args[1],
	})
	if !env.Success {
		fmt.Fprintln(os.Stderr, "error:", env.Error)
		return
	}

	var session struct {
		Token string `json:"token"`
		User  struct {
			FullName string `json:"full_name"`
			Role     string `json:"role"`
		} `json:"user"`
	}
	if err := json.Unmarshal(env.Data, &session); err != nil || session.Token == "" {
		fmt.Fprintln(os.Stderr, "error: malformed session response")
		return
	}

	c.client.SetToken(session.Token)
	fmt.Printf("signed in as %s (%s)\n", session.User.FullName, session.User.Role)
	c.ctrl.RefreshAll(ctx)
}

func (c *console) whoami(ctx context.Context) {
	env := c.client.Do(ctx, http.MethodGet, "/api/auth/me", nil)
	if !env.Success {
		fmt.Fprintln(os.Stderr, "error:", env.Error)
		return
	}
	var me struct {
		FullName string   `json:"full_name"`
		Email    string   `json:"email"`
		Role     string   `json:"role"`
		Modules  []string `json:"modules"`
	}
	json.Unmarshal(env.Data, &me)
	fmt.Printf("%s <%s> role=%s modules=%s\n",
		me.FullName, me.Email, me.Role, strings.Join(me.Modules, ","))
}

func (c *console) overview(ctx context.Context) {
	c.ctrl.RefreshModules(ctx)
	c.ctrl.RefreshUsers(ctx)
	stats := c.ctrl.Stats()

	fmt.Printf("users: %d\n", stats.TotalUsers)
	fmt.Printf("modules: %d (%d active)\n", stats.TotalModules, stats.ActiveModules)
	fmt.Printf("requests: %d (%d pending, %d completed)\n",
		stats.TotalRequests, stats.PendingRequests, stats.CompletedRequests)

	if len(stats.RequestsByModule) > 0 {
		fmt.Println("requests by module:")
		for _, name := range sortedKeys(stats.RequestsByModule) {
			fmt.Printf("  %-20s %d\n", name, stats.RequestsByModule[name])
		}
	}
	if len(stats.DownloadsByModule) > 0 {
		fmt.Println("downloads by module:")
		for _, name := range sortedKeys(stats.DownloadsByModule) {
			fmt.Printf("  %-20s %.0f\n", name, stats.DownloadsByModule[name])
		}
	}
}

func (c *console) modules(ctx context.Context) {
	c.ctrl.RefreshModules(ctx)
	state := c.ctrl.Modules()
	if state.Phase != dashboard.Loaded {
		return
	}
	for _, m := range state.Items {
		fmt.Printf("%-26s %-20s %-12s %s\n", m.ID, m.Name, m.Status, m.DisplayName)
	}
	fmt.Printf("%d module(s)\n", len(state.Items))
}

func (c *console) module(ctx context.Context, args []string) {
	switch {
	case len(args) >= 2 && args[0] == "add":
		display := strings.Join(args[1:], " ")
		f := &forms.ModuleForm{DisplayName: display, Status: "active"}
		if f.Submit(ctx, c.ctrl.UploadLogo, func(ctx context.Context, in services.ModuleInput) error {
			return c.ctrl.CreateModule(ctx, in)
		}) {
			fmt.Printf("created %q as %s\n", display, f.Slug())
		} else {
			fmt.Fprintln(os.Stderr, "error:", f.Err)
		}
	case len(args) == 2 && args[0] == "rm":
		c.ctrl.DeleteModule(ctx, args[1])
	default:
		fmt.Println("usage: module add <display name...> | module rm <id>")
	}
}

func (c *console) products(ctx context.Context, args []string) {
	if len(args) != 1 {
		fmt.Println("usage: products <module-slug>")
		return
	}
	c.ctrl.SelectModule(ctx, args[0])
	state := c.ctrl.Products()
	if state.Phase != dashboard.Loaded {
		return
	}
	for _, p := range state.Items {
		flags := ""
		if p.DownloadEnabled {
			flags += "D"
		}
		if p.RequestEnabled {
			flags += "R"
		}
		if p.CatalogVisible {
			flags += "C"
		}
		fmt.Printf("%-26s %-12s %-12s %-4s %s\n", p.ID, p.Category, p.Status, flags, p.Name)
	}
	fmt.Printf("%d product(s) in %s\n", len(state.Items), args[0])
}

func (c *console) product(ctx context.Context, args []string) {
	switch {
	case len(args) >= 3 && args[0] == "add":
		module := c.ctrl.SelectedModule()
		if module == "" {
			fmt.Println("open a module first: products <module-slug>")
			return
		}
		f := forms.NewProductsForm(module)
		f.Draft = forms.ProductDraft{
			Name:     strings.Join(args[2:], " "),
			Category: args[1],
			Status:   "active",
		}
		if f.Submit(ctx, c.ctrl.CreateProduct) {
			fmt.Println("product added")
		} else {
			fmt.Fprintln(os.Stderr, "error:", f.Err)
		}
	case len(args) == 2 && args[0] == "rm":
		c.ctrl.DeleteProduct(ctx, args[1])
	default:
		fmt.Println("usage: product add <category> <name...> | product rm <id>")
	}
}

func (c *console) users(ctx context.Context) {
	c.ctrl.RefreshUsers(ctx)
	state := c.ctrl.Users()
	if state.Phase != dashboard.Loaded {
		return
	}
	for _, u := range state.Items {
		fmt.Printf("%-26s %-12s %-10s %-28s %s\n",
			u.ID, u.Role, u.Status, u.Email, strings.Join(u.Modules, ","))
	}
	fmt.Printf("%d user(s)\n", len(state.Items))
}

func (c *console) admin(ctx context.Context, args []string) {
	if len(args) < 6 || args[0] != "add" {
		fmt.Println("usage: admin add <email> <password> <role> <module|-> <full name...>")
		return
	}

	c.ctrl.RefreshModules(ctx)
	available := make([]string, 0)
	for _, m := range c.ctrl.Modules().Items {
		available = append(available, m.Name)
	}

	var modules []string
	if args[4] != "-" {
		modules = strings.Split(args[4], ",")
	}

	f := &forms.AdminForm{
		Email:            args[1],
		Password:         args[2],
		Role:             args[3],
		Modules:          modules,
		FullName:         strings.Join(args[5:], " "),
		AvailableModules: available,
	}
	if f.Submit(ctx, c.ctrl.CreateAdmin) {
		fmt.Println("admin created")
	} else {
		fmt.Fprintln(os.Stderr, "error:", f.Err)
	}
}

func (c *console) requests(ctx context.Context) {
	c.ctrl.RefreshRequests(ctx)
	state := c.ctrl.Requests()
	if state.Phase != dashboard.Loaded {
		return
	}
	for _, r := range state.Items {
		fmt.Printf("%-26s %-10s %-20s %-28s dl=%d\n",
			r.ID, r.Status, r.ProductName, r.Email, r.DownloadCount)
	}
	fmt.Printf("%d request(s)\n", len(state.Items))
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
