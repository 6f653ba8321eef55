// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package scholar

import (
	"fmt"
	"net/url"
	"os"
	"regexp"
	"strconv"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"go.yaml.in/yaml/v3"
)

// Locators holds every element locator the scraper depends on. They are
// DevTools search queries (CSS or XPath), except ArticleAnchor which is a
// CSS selector applied to the publication table HTML.
type Locators struct {
	ProfileLink   string `json:"profile_link" yaml:"profile_link"`
	SortByYear    string `json:"sort_by_year" yaml:"sort_by_year"`
	ArticleRows   string `json:"article_rows" yaml:"article_rows"`
	ArticleTable  string `json:"article_table" yaml:"article_table"`
	ArticleAnchor string `json:"article_anchor" yaml:"article_anchor"`
	Title         string `json:"title" yaml:"title"`
	PubInfo       string `json:"pub_info" yaml:"pub_info"`
	Abstract      string `json:"abstract" yaml:"abstract"`
}

// DefaultLocators returns the locators for the current Google Scholar markup.
func DefaultLocators() Locators {
	return Locators{
		ProfileLink:   `//*[@id="gs_res_ccl_mid"]/div[1]/table/tbody/tr/td[2]/h4/a`,
		SortByYear:    `//a[contains(@href, "sortby=pubdate")]`,
		ArticleRows:   `//*[@id="gsc_a_b"]/tr/td[1]/a`,
		ArticleTable:  `#gsc_a_t`,
		ArticleAnchor: `#gsc_a_b > tr > td:first-child > a`,
		Title:         `#gsc_oci_title`,
		PubInfo:       `//*[@id="gsc_oci_table"]/div[2]/div[2]`,
		Abstract:      `#gsc_oci_descr`,
	}
}

// Merge returns l with every empty field taken from def.
func (l Locators) Merge(def Locators) Locators {
	pick := func(v, d string) string {
		if strings.TrimSpace(v) == "" {
			return d
		}
		return v
	}
	return Locators{
		ProfileLink:   pick(l.ProfileLink, def.ProfileLink),
		SortByYear:    pick(l.SortByYear, def.SortByYear),
		ArticleRows:   pick(l.ArticleRows, def.ArticleRows),
		ArticleTable:  pick(l.ArticleTable, def.ArticleTable),
		ArticleAnchor: pick(l.ArticleAnchor, def.ArticleAnchor),
		Title:         pick(l.Title, def.Title),
		PubInfo:       pick(l.PubInfo, def.PubInfo),
		Abstract:      pick(l.Abstract, def.Abstract),
	}
}

// LoadLocators reads locator overrides from a YAML file and fills the
// remaining fields from DefaultLocators. An empty path returns the defaults.
func LoadLocators(path string) (Locators, error) {
	if path == "" {
		return DefaultLocators(), nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return Locators{}, fmt.Errorf("reading locators: %w", err)
	}
	var l Locators
	if err := yaml.Unmarshal(data, &l); err != nil {
		return Locators{}, fmt.Errorf("parsing locators %s: %w", path, err)
	}
	return l.Merge(DefaultLocators()), nil
}

// yearPattern matches a standalone 21st-century year.
var yearPattern = regexp.MustCompile(`\b(20\d{2})\b`)

// ParseYear returns the first year found in a publication info string
// such as "2021/3/15" or "Nature, 2019".
func ParseYear(info string) (int, bool) {
	m := yearPattern.FindStringSubmatch(info)
	if m == nil {
		return 0, false
	}
	year, err := strconv.Atoi(m[1])
	if err != nil {
		return 0, false
	}
	return year, true
}

// ParseArticleLinks extracts publication detail links from the profile's
// publication table HTML, in table order. Relative links are resolved
// against base; duplicates and javascript placeholders are dropped. The
// row link may carry its target in data-href instead of href.
func ParseArticleLinks(html string, base *url.URL, anchor string) ([]string, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return nil, fmt.Errorf("parsing publication table: %w", err)
	}

	var links []string
	seen := make(map[string]bool)
	doc.Find(anchor).Each(func(_ int, sel *goquery.Selection) {
		href, ok := sel.Attr("data-href")
		if !ok || strings.TrimSpace(href) == "" {
			href, _ = sel.Attr("href")
		}
		href = strings.TrimSpace(href)
		if href == "" || href == "#" || strings.HasPrefix(strings.ToLower(href), "javascript:") {
			return
		}
		ref, err := url.Parse(href)
		if err != nil {
			return
		}
		abs := ref.String()
		if base != nil {
			abs = base.ResolveReference(ref).String()
		}
		if seen[abs] {
			return
		}
		seen[abs] = true
		links = append(links, abs)
	})
	return links, nil
}
