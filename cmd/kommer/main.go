// Command kommer is a terminal client for the Kommer promotions platform:
// browse and search posts, manage favorites, publish posts for an owned
// business, and read its analytics dashboard.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"syscall"
	"time"

	"github.com/rs/zerolog"

	"github.com/kommer/client-go/internal/core/domain"
	"github.com/kommer/client-go/internal/core/service"
	"github.com/kommer/client-go/internal/infrastructure/api"
	"github.com/kommer/client-go/internal/infrastructure/config"
	"github.com/kommer/client-go/internal/infrastructure/tokenstore"
	"github.com/kommer/client-go/pkg/logger"
)

const usage = `usage: kommer <command> [flags]

commands:
  login        -email -password
  logout
  register     [-business] -email -username -password [-first -last | -company]
  whoami
  posts        [-search term] [-category all|event|promotion|discount|branch]
  post         <id>
  fav          list | toggle <id>
  create-post  -title -content -type [-image] [-start] [-end] [-percent] [-code] [-branches 1,2] [-ai]
  analytics    [-category all|event|promotion|discount]
`

type app struct {
	sessions  *service.SessionService
	guard     *service.GuardService
	favorites *service.FavoritesService
	catalog   *service.CatalogService
	analytics *service.AnalyticsService
	gateway   *api.Client
	logger    zerolog.Logger
}

func main() {
	cfg := config.Load()
	log := logger.Init(logger.Options{Level: cfg.LogLevel, Pretty: cfg.Env == "development"})

	tokens := tokenstore.New(cfg.TokenFile)
	gateway := api.New(api.Options{
		BaseURL: cfg.APIURL,
		Timeout: cfg.HTTPTimeout,
		Tokens:  tokens,
		Logger:  log,
	})

	sessions := service.NewSessionService(gateway, tokens, log)
	favorites := service.NewFavoritesService(gateway, sessions, log)
	sessions.OnLogout(favorites.Reset)

	a := &app{
		sessions:  sessions,
		guard:     service.NewGuardService(gateway, sessions, log),
		favorites: favorites,
		catalog:   service.NewCatalogService(gateway, log),
		analytics: service.NewAnalyticsService(gateway, sessions, log),
		gateway:   gateway,
		logger:    log,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := a.run(ctx, os.Args[1:]); err != nil {
		fmt.Fprintln(os.Stderr, "kommer:", err)
		os.Exit(1)
	}
}

func (a *app) run(ctx context.Context, args []string) error {
	if len(args) == 0 {
		fmt.Fprint(os.Stderr, usage)
		return errors.New("missing command")
	}

	cmd, rest := args[0], args[1:]
	switch cmd {
	case "login":
		return a.cmdLogin(ctx, rest)
	case "logout":
		a.sessions.Logout()
		fmt.Println("logged out")
		return nil
	case "register":
		return a.cmdRegister(ctx, rest)
	case "whoami":
		return a.cmdWhoami(ctx)
	case "posts":
		return a.cmdPosts(ctx, rest)
	case "post":
		return a.cmdPost(ctx, rest)
	case "fav":
		return a.cmdFav(ctx, rest)
	case "create-post":
		return a.cmdCreatePost(ctx, rest)
	case "analytics":
		return a.cmdAnalytics(ctx, rest)
	case "help", "-h", "--help":
		fmt.Print(usage)
		return nil
	default:
		fmt.Fprint(os.Stderr, usage)
		return fmt.Errorf("unknown command %q", cmd)
	}
}

// restore re-establishes the session from the persisted token. Failures are
// reported but never fatal; the command proceeds unauthenticated.
func (a *app) restore(ctx context.Context) {
	if err := a.sessions.Restore(ctx); err != nil {
		a.logger.Warn().Err(err).Msg("session restore failed")
	}
}

// admit runs the route guard for a navigation target, printing where the
// user was sent when the answer is a redirect.
func (a *app) admit(ctx context.Context, target service.Target) (bool, error) {
	decision, err := a.guard.Admit(ctx, target)
	if err != nil {
		return false, err
	}
	if !decision.Allow {
		switch decision.Redirect.Page {
		case service.PageLogin:
			fmt.Println("login required: run `kommer login` first")
		default:
			fmt.Printf("not allowed here, try the %s page instead\n", decision.Redirect.Page)
		}
		return false, nil
	}
	return true, nil
}

func (a *app) cmdLogin(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("login", flag.ExitOnError)
	email := fs.String("email", "", "account email")
	password := fs.String("password", "", "account password")
	if err := fs.Parse(args); err != nil {
		return err
	}

	err := a.sessions.Login(ctx, domain.Credentials{Email: *email, Password: *password})
	if err != nil {
		return err
	}
	printSession(a.sessions.Current())
	return nil
}

func (a *app) cmdRegister(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("register", flag.ExitOnError)
	business := fs.Bool("business", false, "register a business account")
	email := fs.String("email", "", "account email")
	username := fs.String("username", "", "display name")
	password := fs.String("password", "", "account password")
	first := fs.String("first", "", "first name (client accounts)")
	last := fs.String("last", "", "last name (client accounts)")
	company := fs.String("company", "", "company name (business accounts)")
	if err := fs.Parse(args); err != nil {
		return err
	}

	var err error
	if *business {
		err = a.sessions.RegisterBusiness(ctx, domain.BusinessRegistration{
			Email:       *email,
			UserName:    *username,
			Password:    *password,
			CompanyName: *company,
		})
	} else {
		err = a.sessions.RegisterClient(ctx, domain.ClientRegistration{
			Email:     *email,
			UserName:  *username,
			Password:  *password,
			FirstName: *first,
			LastName:  *last,
		})
	}
	if err != nil {
		return err
	}
	printSession(a.sessions.Current())
	return nil
}

func (a *app) cmdWhoami(ctx context.Context) error {
	a.restore(ctx)
	printSession(a.sessions.Current())
	return nil
}

func (a *app) cmdPosts(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("posts", flag.ExitOnError)
	search := fs.String("search", "", "free-text search over titles and contents")
	category := fs.String("category", "all", "all, event, promotion, discount or branch")
	if err := fs.Parse(args); err != nil {
		return err
	}

	a.restore(ctx)
	if err := a.catalog.Refresh(ctx); err != nil {
		return err
	}

	result := a.catalog.Filter(*search, domain.ParseCategory(*category))
	for _, p := range result.Posts {
		marker := " "
		if a.favorites.IsFavorite(p.ID) {
			marker = "*"
		}
		fmt.Printf("%s #%-4d [%s] %s\n", marker, p.ID, p.Type, p.Title)
	}
	for _, b := range result.Branches {
		fmt.Printf("  branch #%-4d %s — %s\n", b.ID, b.Description, b.Location)
	}
	return nil
}

func (a *app) cmdPost(ctx context.Context, args []string) error {
	if len(args) == 0 {
		return errors.New("post: missing id")
	}
	id, err := strconv.Atoi(args[0])
	if err != nil {
		return fmt.Errorf("post: bad id %q", args[0])
	}

	a.restore(ctx)
	post, err := a.gateway.GetPost(ctx, id)
	if err != nil {
		return err
	}
	a.analytics.TrackView(ctx, id)

	fmt.Printf("#%d [%s] %s\n", post.ID, post.Type, post.Title)
	fmt.Println(post.Content)
	if !post.StartDate.IsZero() {
		fmt.Println("starts:", post.StartDate.Format(time.DateOnly))
	}
	if post.Discount != nil && post.Discount.Code != "" {
		fmt.Printf("promo code: %s (%.0f%%)\n", post.Discount.Code, post.Discount.Percentage)
		a.analytics.TrackPromoCopy(ctx, id)
	}
	return nil
}

func (a *app) cmdFav(ctx context.Context, args []string) error {
	a.restore(ctx)
	ok, err := a.admit(ctx, service.Target{Page: service.PageFavorites})
	if err != nil || !ok {
		return err
	}
	if err := a.favorites.Load(ctx); err != nil {
		return err
	}

	sub := "list"
	if len(args) > 0 {
		sub = args[0]
	}
	switch sub {
	case "list":
		for _, id := range a.favorites.IDs() {
			fmt.Println(id)
		}
		return nil
	case "toggle":
		if len(args) < 2 {
			return errors.New("fav toggle: missing post id")
		}
		id, err := strconv.Atoi(args[1])
		if err != nil {
			return fmt.Errorf("fav toggle: bad id %q", args[1])
		}
		added, err := a.favorites.Toggle(ctx, id)
		if err != nil {
			return err
		}
		if added {
			fmt.Println("added to favorites")
		} else {
			fmt.Println("removed from favorites")
		}
		return nil
	default:
		return fmt.Errorf("fav: unknown subcommand %q", sub)
	}
}

func (a *app) cmdCreatePost(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("create-post", flag.ExitOnError)
	title := fs.String("title", "", "post title")
	content := fs.String("content", "", "post description")
	kind := fs.String("type", "event", "event, promotion or discount")
	image := fs.String("image", "", "image URL")
	start := fs.String("start", time.Now().Format(time.DateOnly), "start date (YYYY-MM-DD)")
	end := fs.String("end", "", "end date (YYYY-MM-DD)")
	percent := fs.Float64("percent", 0, "discount percentage")
	code := fs.String("code", "", "promo code")
	branches := fs.String("branches", "", "comma-separated branch ids")
	ai := fs.Bool("ai", false, "expand the description with the assistant")
	if err := fs.Parse(args); err != nil {
		return err
	}

	a.restore(ctx)
	ok, err := a.admit(ctx, service.Target{Page: service.PageCreatePost})
	if err != nil || !ok {
		return err
	}

	body := *content
	if *ai {
		answer, err := a.gateway.AskAssistant(ctx, body)
		if err != nil {
			return fmt.Errorf("assistant: %w", err)
		}
		body = answer
	}

	draft := domain.PostDraft{
		Title:     *title,
		Content:   body,
		Type:      domain.PostType(strings.ToLower(*kind)),
		ImageURL:  *image,
		StartDate: parseDate(*start),
		BranchIDs: parseIDs(*branches),
	}
	if *end != "" {
		d := parseDate(*end)
		draft.EndDate = &d
	}
	if *percent > 0 || *code != "" {
		draft.Discount = &domain.DiscountDraft{Percentage: *percent, Code: *code}
	}

	if err := service.CheckPostDraft(draft); err != nil {
		return err
	}
	post, err := a.gateway.CreatePost(ctx, draft)
	if err != nil {
		return err
	}
	fmt.Printf("created post #%d\n", post.ID)
	return nil
}

func (a *app) cmdAnalytics(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("analytics", flag.ExitOnError)
	category := fs.String("category", "all", "all, event, promotion or discount")
	if err := fs.Parse(args); err != nil {
		return err
	}

	a.restore(ctx)
	ok, err := a.admit(ctx, service.Target{Page: service.PageAnalytics})
	if err != nil || !ok {
		return err
	}

	dashboard, err := a.analytics.Dashboard(ctx)
	if err != nil {
		return err
	}

	fmt.Printf("views: %d  favorites: %d  promo copies: %d  subscribers: %d\n",
		dashboard.TotalViews, dashboard.TotalLikes, dashboard.TotalPromosCopied, dashboard.SubscribersCount)
	for _, row := range dashboard.FilterByType(domain.ParseCategory(*category)) {
		fmt.Printf("  [%s] %-30s views=%d likes=%d promos=%d\n",
			row.Type, row.Title,
			row.GuestViews+row.SubscriberViews,
			row.GuestLikes+row.SubscriberLikes,
			row.PromosCopied)
	}
	return nil
}

func printSession(s domain.Session) {
	if !s.IsAuthenticated {
		fmt.Println("not logged in")
		return
	}
	fmt.Printf("logged in as %s <%s> (%s)\n", s.User.UserName, s.User.Email, s.User.Role)
	if id, ok := s.OwnedBusiness(); ok {
		fmt.Printf("owns business #%d\n", id)
	}
}

func parseDate(s string) time.Time {
	t, err := time.Parse(time.DateOnly, s)
	if err != nil {
		return time.Time{}
	}
	return t
}

func parseIDs(s string) []int {
	if strings.TrimSpace(s) == "" {
		return nil
	}
	var out []int
	for _, part := range strings.Split(s, ",") {
		if id, err := strconv.Atoi(strings.TrimSpace(part)); err == nil {
			out = append(out, id)
		}
	}
	return out
}
