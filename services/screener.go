package services

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"
	"unicode"
	"unicode/utf8"

	"finai/models"

	"github.com/shopspring/decimal"
	"golang.org/x/net/html"
	"golang.org/x/net/html/charset"
	"golang.org/x/text/encoding"
)

// Screener scrapes company pages from a server-rendered financial data site
// instead of calling a JSON API.
type Screener struct {
	baseURL    string
	httpClient *http.Client
	now        func() time.Time
}

func NewScreener(baseURL string, timeout time.Duration) *Screener {
	return &Screener{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: timeout},
		now:        time.Now,
	}
}

var ratioKeys = map[string]string{
	"market cap":     "marketCap",
	"current price":  "currentPrice",
	"stock p/e":      "peRatio",
	"book value":     "bookValue",
	"dividend yield": "dividendYield",
	"roce":           "roce",
	"roe":            "roe",
	"face value":     "faceValue",
}

var (
	crore = decimal.New(1, 7)
	lakh  = decimal.New(1, 5)
)

func (s *Screener) Lookup(ctx context.Context, ticker string) (*models.CompanySnapshot, error) {
	page := fmt.Sprintf("%s/company/%s/", s.baseURL, url.PathEscape(ticker))
	body, err := s.fetch(ctx, page)
	if err != nil {
		var upErr *UpstreamError
		if errors.As(err, &upErr) && upErr.StatusCode == http.StatusNotFound {
			upErr.Err = fmt.Errorf("%w: %s", ErrTickerNotFound, ticker)
		}
		return nil, err
	}

	snap, err := ParseCompanyPage(bytes.NewReader(body), ticker)
	if err != nil {
		return nil, err
	}
	snap.Date = s.now().Format("2006-01-02")
	return snap, nil
}

// ScreenTable scrapes the first results table of a stock screen page.
func (s *Screener) ScreenTable(ctx context.Context, pageURL string) ([]map[string]string, error) {
	if pageURL == "" {
		return nil, fmt.Errorf("%w: stock screen url", ErrNotConfigured)
	}
	body, err := s.fetch(ctx, pageURL)
	if err != nil {
		return nil, err
	}
	return ParseScreenTable(bytes.NewReader(body))
}

func (s *Screener) fetch(ctx context.Context, pageURL string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, pageURL, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("User-Agent", "Mozilla/5.0 (compatible; finai/1.0)")
	req.Header.Set("Accept", "text/html")

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch %s: %w", pageURL, err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", pageURL, err)
	}
	if resp.StatusCode >= 300 {
		return nil, &UpstreamError{
			Err:        fmt.Errorf("fetch %s failed", pageURL),
			StatusCode: resp.StatusCode,
			Details:    http.StatusText(resp.StatusCode),
		}
	}

	// Without a declared charset DetermineEncoding falls back to
	// windows-1252, so a body that is already valid UTF-8 is kept as is.
	enc, name, certain := charset.DetermineEncoding(raw, resp.Header.Get("Content-Type"))
	if name == "utf-8" || (!certain && utf8.Valid(raw)) {
		return raw, nil
	}
	return decodeWith(enc, raw)
}

func decodeWith(enc encoding.Encoding, raw []byte) ([]byte, error) {
	out, err := enc.NewDecoder().Bytes(raw)
	if err != nil {
		return nil, fmt.Errorf("decode page: %w", err)
	}
	return out, nil
}

// ParseCompanyPage extracts the name, about text and the top ratio list.
// Ratios that cannot be parsed are logged and left out; a page with no
// ratios at all is an error.
func ParseCompanyPage(r io.Reader, ticker string) (*models.CompanySnapshot, error) {
	doc, err := html.Parse(r)
	if err != nil {
		return nil, fmt.Errorf("parse page: %w", err)
	}

	ratios := make(map[string]float64)
	if list := findFirst(doc, func(n *html.Node) bool { return attr(n, "id") == "top-ratios" }); list != nil {
		for _, li := range findAll(list, isElement("li")) {
			nameNode := findFirst(li, hasClass("name"))
			valueNode := findFirst(li, hasClass("value"))
			if nameNode == nil || valueNode == nil {
				continue
			}
			label := textOf(nameNode)
			value := textOf(valueNode)
			extractRatio(ratios, label, value, ticker)
		}
	}
	if len(ratios) == 0 {
		return nil, fmt.Errorf("%w for %s", ErrNoData, ticker)
	}
	for _, key := range ratioKeys {
		if _, ok := ratios[key]; !ok {
			log.Printf("[screener] %s: %s not found on page", ticker, key)
		}
	}

	snap := &models.CompanySnapshot{
		Ticker: ticker,
		Ratios: ratios,
		Source: "screener",
	}
	if h1 := findFirst(doc, isElement("h1")); h1 != nil {
		snap.Name = textOf(h1)
	}
	if about := findFirst(doc, hasClass("about")); about != nil {
		if p := findFirst(about, isElement("p")); p != nil {
			snap.About = textOf(p)
		} else {
			snap.About = textOf(about)
		}
	}
	if price, ok := ratios["currentPrice"]; ok {
		snap.Price = strconv.FormatFloat(price, 'f', -1, 64)
	}
	return snap, nil
}

func extractRatio(ratios map[string]float64, label, value, ticker string) {
	norm := strings.ToLower(strings.Join(strings.Fields(label), " "))

	if norm == "high / low" {
		parts := strings.SplitN(value, "/", 2)
		if len(parts) != 2 {
			log.Printf("[screener] %s: cannot split High / Low %q", ticker, value)
			return
		}
		for i, key := range []string{"high", "low"} {
			v, err := parseAmount(parts[i])
			if err != nil {
				log.Printf("[screener] %s: %s: %v", ticker, key, err)
				continue
			}
			ratios[key] = v
		}
		return
	}

	key, ok := ratioKeys[norm]
	if !ok {
		key = camelKey(label)
	}
	if key == "" {
		return
	}
	v, err := parseAmount(value)
	if err != nil {
		log.Printf("[screener] %s: %s: %v", ticker, key, err)
		return
	}
	ratios[key] = v
}

// parseAmount turns strings like "₹ 19,70,394 Cr.", "0.35 %" or "1,609" into
// numbers. Crore and lakh suffixes are expanded.
func parseAmount(raw string) (float64, error) {
	s := strings.TrimSpace(raw)
	s = strings.NewReplacer("₹", "", "Rs.", "", ",", "", "%", "", "\u00a0", " ").Replace(s)
	s = strings.TrimSpace(s)

	multiplier := decimal.NewFromInt(1)
	lower := strings.ToLower(s)
	for _, suffix := range []struct {
		text string
		mult decimal.Decimal
	}{
		{"cr.", crore}, {"crore", crore}, {"cr", crore},
		{"lakh", lakh}, {"lac", lakh},
	} {
		if strings.HasSuffix(lower, suffix.text) {
			s = strings.TrimSpace(s[:len(s)-len(suffix.text)])
			multiplier = suffix.mult
			break
		}
	}
	if s == "" {
		return 0, fmt.Errorf("empty value %q", raw)
	}

	d, err := decimal.NewFromString(s)
	if err != nil {
		return 0, fmt.Errorf("not a number %q", raw)
	}
	return d.Mul(multiplier).InexactFloat64(), nil
}

// ParseScreenTable reads the first table on the page into rows keyed by the
// header text. Repeated header rows and rows of the wrong width are dropped.
func ParseScreenTable(r io.Reader) ([]map[string]string, error) {
	doc, err := html.Parse(r)
	if err != nil {
		return nil, fmt.Errorf("parse page: %w", err)
	}
	table := findFirst(doc, isElement("table"))
	if table == nil {
		return nil, fmt.Errorf("%w: no table on page", ErrNoData)
	}

	var headers []string
	rows := []map[string]string{}
	for _, tr := range findAll(table, isElement("tr")) {
		if ths := findAll(tr, isElement("th")); len(ths) > 0 {
			if headers == nil {
				for _, th := range ths {
					headers = append(headers, textOf(th))
				}
			}
			continue
		}
		tds := findAll(tr, isElement("td"))
		if headers == nil || len(tds) != len(headers) {
			continue
		}
		row := make(map[string]string, len(headers))
		for i, td := range tds {
			row[headers[i]] = textOf(td)
		}
		rows = append(rows, row)
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("%w: table has no rows", ErrNoData)
	}
	return rows, nil
}

func camelKey(label string) string {
	words := strings.FieldsFunc(label, func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	})
	var b strings.Builder
	for i, w := range words {
		w = strings.ToLower(w)
		if i > 0 {
			r, size := utf8.DecodeRuneInString(w)
			w = string(unicode.ToUpper(r)) + w[size:]
		}
		b.WriteString(w)
	}
	return b.String()
}

func isElement(tag string) func(*html.Node) bool {
	return func(n *html.Node) bool { return n.Type == html.ElementNode && n.Data == tag }
}

func hasClass(class string) func(*html.Node) bool {
	return func(n *html.Node) bool {
		if n.Type != html.ElementNode {
			return false
		}
		for _, c := range strings.Fields(attr(n, "class")) {
			if c == class {
				return true
			}
		}
		return false
	}
}

func attr(n *html.Node, key string) string {
	for _, a := range n.Attr {
		if a.Key == key {
			return a.Val
		}
	}
	return ""
}

func findFirst(n *html.Node, match func(*html.Node) bool) *html.Node {
	if match(n) {
		return n
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if found := findFirst(c, match); found != nil {
			return found
		}
	}
	return nil
}

// findAll returns matching descendants of n without descending into matches.
func findAll(n *html.Node, match func(*html.Node) bool) []*html.Node {
	var out []*html.Node
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if match(c) {
			out = append(out, c)
			continue
		}
		out = append(out, findAll(c, match)...)
	}
	return out
}

func textOf(n *html.Node) string {
	var b strings.Builder
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.TextNode {
			b.WriteString(n.Data)
			b.WriteByte(' ')
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(n)
	return strings.Join(strings.Fields(b.String()), " ")
}
