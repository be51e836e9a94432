package storefront

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strconv"
	"strings"

	"session-cart/internal/pricing"

	"github.com/shopspring/decimal"
)

const helpText = `commands:
  list                 show the catalog
  search <term>        filter the catalog by title
  add <id>             add a catalog product to the cart
  inc <id>             increase a cart line by one
  dec <id>             decrease a cart line by one
  reset <id>           remove a cart line
  clear                empty the cart and drop the discount
  discount [code]      apply a discount code
  cart                 show the cart and totals
  help                 show this help
  quit                 exit`

// Shell drives a Store from line-oriented text commands.
type Shell struct {
	store *Store
	out   io.Writer
}

// NewShell creates a shell writing to out.
func NewShell(store *Store, out io.Writer) *Shell {
	return &Shell{store: store, out: out}
}

// Run reads commands from in until EOF, "quit" or ctx is done.
// Cancelling ctx returns immediately even while a read is pending.
func (sh *Shell) Run(ctx context.Context, in io.Reader) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	lines := make(chan string)
	readErr := make(chan error, 1)
	go func() {
		scanner := bufio.NewScanner(in)
		for scanner.Scan() {
			select {
			case lines <- scanner.Text():
			case <-ctx.Done():
				return
			}
		}
		readErr <- scanner.Err()
	}()

	sh.prompt()
	for {
		select {
		case <-ctx.Done():
			fmt.Fprintln(sh.out)
			return nil
		case err := <-readErr:
			return err
		case line := <-lines:
			if !sh.Exec(line) {
				return nil
			}
			sh.prompt()
		}
	}
}

// Exec runs one command. It returns false when the shell should exit.
func (sh *Shell) Exec(line string) bool {
	cmd, arg, _ := strings.Cut(strings.TrimSpace(line), " ")
	arg = strings.TrimSpace(arg)

	switch strings.ToLower(cmd) {
	case "":
	case "quit", "exit":
		return false
	case "help":
		fmt.Fprintln(sh.out, helpText)
	case "list":
		sh.printProducts("")
	case "search":
		sh.printProducts(arg)
	case "add":
		id, ok := sh.parseID(arg)
		if !ok {
			break
		}
		p, found := sh.store.Product(id)
		if !found {
			fmt.Fprintf(sh.out, "no product with id %d\n", id)
			break
		}
		sh.store.AddToCart(p)
		fmt.Fprintf(sh.out, "added %s\n", p.Title)
	case "inc":
		if id, ok := sh.parseID(arg); ok {
			sh.store.Increment(id)
			sh.printCart()
		}
	case "dec":
		if id, ok := sh.parseID(arg); ok {
			sh.store.Decrement(id)
			sh.printCart()
		}
	case "reset":
		if id, ok := sh.parseID(arg); ok {
			sh.store.Reset(id)
			sh.printCart()
		}
	case "clear":
		sh.store.Clear()
		fmt.Fprintln(sh.out, "cart cleared")
	case "discount":
		if msg := sh.store.ApplyDiscount(arg); msg != "" {
			fmt.Fprintln(sh.out, msg)
		}
	case "cart":
		sh.printCart()
	default:
		fmt.Fprintf(sh.out, "unknown command %q, type help\n", cmd)
	}
	return true
}

func (sh *Shell) prompt() {
	fmt.Fprint(sh.out, "> ")
}

func (sh *Shell) parseID(arg string) (int64, bool) {
	id, err := strconv.ParseInt(arg, 10, 64)
	if err != nil {
		fmt.Fprintf(sh.out, "invalid product id %q\n", arg)
		return 0, false
	}
	return id, true
}

func (sh *Shell) printProducts(term string) {
	products := sh.store.Products(term)
	if len(products) == 0 {
		fmt.Fprintln(sh.out, "no products")
		return
	}
	for _, p := range products {
		fmt.Fprintf(sh.out, "%4d  %-50s $%s  (%s)\n", p.ID, p.Title, pricing.Format(decimal.NewFromFloat(p.Price)), p.Category)
	}
}

func (sh *Shell) printCart() {
	lines := sh.store.Lines()
	if len(lines) == 0 {
		fmt.Fprintln(sh.out, "cart is empty")
		return
	}

	for _, l := range lines {
		fmt.Fprintf(sh.out, "%4d  %-50s %3d x $%s\n", l.ID, l.Title, l.Quantity, pricing.Format(decimal.NewFromFloat(l.Price)))
	}

	totals := sh.store.Totals()
	d := sh.store.Discount()
	fmt.Fprintf(sh.out, "items: %d\n", totals.ItemCount)
	fmt.Fprintf(sh.out, "subtotal: $%s\n", pricing.Format(totals.Subtotal))
	if d.Percentage > 0 {
		fmt.Fprintf(sh.out, "discount (%d%%): -$%s\n", d.Percentage, pricing.Format(totals.Discount))
	}
	fmt.Fprintf(sh.out, "total: $%s\n", pricing.Format(totals.Total))
}
