package main

import (
	"bufio"
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"

	"go.uber.org/zap"

	"github.com/hfdstore/storefront/internal/client/api"
	"github.com/hfdstore/storefront/internal/client/cart"
	"github.com/hfdstore/storefront/internal/client/catalog"
	"github.com/hfdstore/storefront/internal/client/localstore"
	"github.com/hfdstore/storefront/internal/client/session"
	"github.com/hfdstore/storefront/internal/config"
	"github.com/hfdstore/storefront/internal/models"
)

var (
	version   string
	buildDate string
)

// shell holds the wired client stack the REPL commands operate on.
type shell struct {
	sess *session.Manager
	cat  *catalog.Cache
	cart *cart.Synchronizer
	api  *api.Client
}

// repl runs the interactive storefront shell, accepting commands to
// browse the catalog, manage the cart and place orders.
func (s *shell) repl() {
	scanner := bufio.NewScanner(os.Stdin)
	ctx := context.Background()

	for {
		fmt.Print("storefront> ")
		if !scanner.Scan() {
			break
		}
		line := strings.TrimSpace(scanner.Text())
		args := strings.Fields(line)
		if len(args) == 0 {
			continue
		}
		switch args[0] {
		case "help":
			fmt.Println("Available commands: help, login <email> <password>, signup <email> <password> [name], logout, whoami,")
			fmt.Println("  products, product <id>, categories, cart, add <productId> [qty], update <productId> <qty>,")
			fmt.Println("  remove <productId>, clear, checkout, orders, profile, refresh, reset-content, exit")
		case "login":
			if len(args) < 3 {
				fmt.Println("Usage: login <email> <password>")
				continue
			}
			ok, err := s.sess.Login(ctx, args[1], args[2])
			if err != nil {
				fmt.Println("Login failed:", err)
				continue
			}
			if !ok {
				fmt.Println("Invalid email or password")
				continue
			}
			fmt.Println("Logged in as", s.sess.User().Email)
		case "signup":
			if len(args) < 3 {
				fmt.Println("Usage: signup <email> <password> [name]")
				continue
			}
			name := ""
			if len(args) > 3 {
				name = strings.Join(args[3:], " ")
			}
			ok, err := s.sess.Signup(ctx, args[1], args[2], name, "")
			if err != nil {
				fmt.Println("Signup failed:", err)
				continue
			}
			if !ok {
				fmt.Println("Account created, please log in")
				continue
			}
			fmt.Println("Signed up as", s.sess.User().Email)
		case "logout":
			s.sess.Logout()
			fmt.Println("Logged out")
		case "whoami":
			if u := s.sess.User(); u != nil {
				fmt.Printf("%s <%s>\n", u.Name, u.Email)
			} else {
				fmt.Println("Browsing as guest")
			}
		case "products":
			for _, p := range s.cat.Products() {
				fmt.Printf("%-4s %-40s ₹%.0f [%s]\n", p.ID, p.Name, p.Price, p.Category)
			}
		case "product":
			if len(args) < 2 {
				fmt.Println("Usage: product <id>")
				continue
			}
			p, ok := s.cat.Product(args[1])
			if !ok {
				fmt.Println("Product not found")
				continue
			}
			b, _ := json.MarshalIndent(p, "", "  ")
			fmt.Println(string(b))
		case "categories":
			for _, c := range s.cat.Categories() {
				fmt.Printf("%s (%s)\n", c.Name, c.ID)
			}
		case "cart":
			items := s.cart.Items()
			if len(items) == 0 {
				fmt.Println("Cart is empty")
				continue
			}
			for _, it := range items {
				fmt.Printf("%-4s %-40s x%d  ₹%.0f\n", it.Product.ID, it.Product.Name, it.Quantity, it.Product.Price*float64(it.Quantity))
			}
			fmt.Printf("Subtotal: ₹%.0f (%d items)\n", s.cart.Subtotal(), s.cart.Count())
		case "add":
			if len(args) < 2 {
				fmt.Println("Usage: add <productId> [qty]")
				continue
			}
			qty := 1
			if len(args) > 2 {
				qty, _ = strconv.Atoi(args[2])
				if qty < 1 {
					qty = 1
				}
			}
			p, ok := s.cat.Product(args[1])
			if !ok {
				fmt.Println("Product not found")
				continue
			}
			s.cart.AddItem(ctx, p, qty)
			fmt.Println("Added", p.Name)
		case "update":
			if len(args) < 3 {
				fmt.Println("Usage: update <productId> <qty>")
				continue
			}
			qty, err := strconv.Atoi(args[2])
			if err != nil {
				fmt.Println("Quantity must be a number")
				continue
			}
			s.cart.UpdateQuantity(ctx, args[1], qty)
		case "remove":
			if len(args) < 2 {
				fmt.Println("Usage: remove <productId>")
				continue
			}
			s.cart.RemoveItem(ctx, args[1])
		case "clear":
			s.cart.ClearCart(ctx)
			fmt.Println("Cart cleared")
		case "checkout":
			s.checkout(ctx, scanner)
		case "orders":
			if !s.sess.IsAuthenticated() {
				fmt.Println("Please log in first")
				continue
			}
			resp, err := s.api.ListOrders(ctx, api.PageQuery{})
			if err != nil {
				fmt.Println("Could not load orders:", err)
				continue
			}
			b, _ := json.MarshalIndent(resp, "", "  ")
			fmt.Println(string(b))
		case "profile":
			if !s.sess.IsAuthenticated() {
				fmt.Println("Please log in first")
				continue
			}
			p, err := s.sess.Profile(ctx)
			if err != nil {
				fmt.Println("Could not load profile:", err)
				continue
			}
			b, _ := json.MarshalIndent(p, "", "  ")
			fmt.Println(string(b))
		case "refresh":
			if err := s.cat.Load(ctx); err != nil {
				fmt.Println("Catalog refresh failed, showing local data:", err)
			} else {
				fmt.Printf("Catalog refreshed, %d products\n", len(s.cat.Products()))
			}
		case "reset-content":
			s.cat.ResetToDefaults()
			fmt.Println("Site content reset to defaults")
		case "exit":
			fmt.Println("Bye")
			return
		default:
			fmt.Println("Unknown command. Type 'help' for a list of commands.")
		}
	}
}

// checkout prompts for a shipping address and places the order.
func (s *shell) checkout(ctx context.Context, scanner *bufio.Scanner) {
	if !s.sess.IsAuthenticated() {
		fmt.Println("Please log in to check out")
		return
	}
	if s.cart.Count() == 0 {
		fmt.Println("Cart is empty")
		return
	}

	prompt := func(label string) string {
		fmt.Print(label + ": ")
		if !scanner.Scan() {
			return ""
		}
		return strings.TrimSpace(scanner.Text())
	}

	req := models.CreateOrderRequest{
		ShippingAddress: models.ShippingAddress{
			FullName:     prompt("Full name"),
			Email:        s.sess.User().Email,
			Phone:        prompt("Phone"),
			AddressLine1: prompt("Address line 1"),
			AddressLine2: prompt("Address line 2 (optional)"),
			City:         prompt("City"),
			State:        prompt("State"),
			Pincode:      prompt("Pincode"),
		},
		PaymentMethod: "cod",
	}

	resp, err := s.api.CreateOrder(ctx, req)
	if err != nil {
		fmt.Println("Checkout failed:", err)
		return
	}
	s.cart.Refetch(ctx)
	b, _ := json.MarshalIndent(resp, "", "  ")
	fmt.Println("Order placed:")
	fmt.Println(string(b))
}

// main parses flags, wires the client stack and starts the shell.
func main() {
	var showVer bool
	flag.BoolVar(&showVer, "version", false, "show build version and date")
	flag.Parse()

	if showVer {
		fmt.Printf("Storefront Client\nVersion: %s\nBuild Date: %s\n", version, buildDate)
		return
	}

	cfg := config.LoadClient()

	logger, err := zap.NewDevelopment()
	if err != nil {
		log.Fatal(err)
	}
	defer func() { _ = logger.Sync() }()

	store, err := localstore.Open(cfg.StateFile)
	if err != nil {
		logger.Fatal("cannot open local state", zap.Error(err))
	}

	client := api.New(cfg.APIURL, store, logger)
	sess := session.New(client, store, logger)
	cat := catalog.New(client, store, logger)
	sync := cart.New(client, sess, cat, logger,
		cart.WithNotifier(func(msg string) { fmt.Println("!", msg) }),
	)

	ctx := context.Background()
	if err := cat.Load(ctx); err != nil {
		logger.Warn("catalog fetch failed, using local data", zap.Error(err))
	}
	if sess.IsAuthenticated() {
		sync.Refetch(ctx)
	}

	s := &shell{sess: sess, cat: cat, cart: sync, api: client}
	s.repl()
}
