// Package goquery extracts structured supplier profiles from raw HTML
// using CSS selectors.
package goquery

import (
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/formul8/sourcing"
)

// Ensure Extractor implements sourcing.ProfileExtractor at compile time.
var _ sourcing.ProfileExtractor = (*Extractor)(nil)

// Extractor pulls supplier profile fields out of HTML pages.
type Extractor struct{}

// NewExtractor creates a new Extractor.
func NewExtractor() *Extractor {
	return &Extractor{}
}

// maxListItems caps extracted product/service lists. Supplier catalog
// pages can run to hundreds of items; the profile only needs a sample.
const maxListItems = 12

// maxItemLength filters out sentence-length list items that are prose
// rather than product names.
const maxItemLength = 80

var (
	emailRe = regexp.MustCompile(`[a-zA-Z0-9._%+\-]+@[a-zA-Z0-9.\-]+\.[a-zA-Z]{2,}`)
	phoneRe = regexp.MustCompile(`\(?\d{3}\)?[\s.\-]\d{3}[\s.\-]\d{4}`)
	// City, ST or City, ST 12345
	locationRe = regexp.MustCompile(`[A-Z][a-zA-Z ]+,\s*[A-Z]{2}(\s+\d{5})?`)

	productHeadingRe = regexp.MustCompile(`(?i)\b(products?|catalog|shop|equipment|supplies|strains|genetics)\b`)
	serviceHeadingRe = regexp.MustCompile(`(?i)\b(services?|consulting|support|solutions)\b`)
)

// certificationKeywords maps lowercase page-text markers to the
// certification names recorded on the profile.
var certificationKeywords = []struct {
	marker string
	name   string
}{
	{"iso 17025", "ISO 17025"},
	{"iso 9001", "ISO 9001"},
	{"gmp", "GMP"},
	{"ul listed", "UL listed"},
	{"child-resistant", "Child-resistant certified"},
	{"child resistant", "Child-resistant certified"},
	{"state licensed", "State licensed"},
	{"state-licensed", "State licensed"},
	{"certificate of analysis", "Certificate of analysis"},
	{"organic certified", "Organic certified"},
	{"usda organic", "USDA Organic"},
}

// ExtractProfile parses the page and returns a supplier profile. Fields
// that cannot be found in the HTML fall back to the seed's values, so a
// sparse page still yields a usable record.
func (e *Extractor) ExtractProfile(html string, seed sourcing.SeedSource) (*sourcing.Profile, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return nil, sourcing.Errorf(sourcing.EINVALID, "failed to parse HTML: %v", err)
	}

	profile := &sourcing.Profile{
		Title:       extractTitle(doc, seed),
		Description: extractDescription(doc),
		Products:    extractListUnderHeadings(doc, productHeadingRe),
		Services:    extractListUnderHeadings(doc, serviceHeadingRe),
		Contact:     extractContact(doc),
	}

	bodyText := doc.Find("body").Text()
	profile.Certifications = extractCertifications(bodyText)
	profile.Location = extractLocation(doc, seed)

	if len(profile.Products) == 0 {
		profile.Products = seed.Products
	}
	if len(profile.Services) == 0 {
		profile.Services = seed.Services
	}

	return profile, nil
}

func extractTitle(doc *goquery.Document, seed sourcing.SeedSource) string {
	if title, ok := doc.Find(`meta[property="og:title"]`).Attr("content"); ok {
		if title = strings.TrimSpace(title); title != "" {
			return title
		}
	}
	if title := strings.TrimSpace(doc.Find("title").First().Text()); title != "" {
		return title
	}
	if h1 := strings.TrimSpace(doc.Find("h1").First().Text()); h1 != "" {
		return h1
	}
	return seed.Name
}

func extractDescription(doc *goquery.Document) string {
	if desc, ok := doc.Find(`meta[name="description"]`).Attr("content"); ok {
		if desc = strings.TrimSpace(desc); desc != "" {
			return desc
		}
	}
	if desc, ok := doc.Find(`meta[property="og:description"]`).Attr("content"); ok {
		if desc = strings.TrimSpace(desc); desc != "" {
			return desc
		}
	}
	return ""
}

// extractListUnderHeadings collects items from lists that immediately
// follow a heading matching the pattern.
func extractListUnderHeadings(doc *goquery.Document, headingRe *regexp.Regexp) []string {
	var items []string
	seen := make(map[string]bool)

	doc.Find("h1, h2, h3").Each(func(_ int, heading *goquery.Selection) {
		if !headingRe.MatchString(heading.Text()) {
			return
		}

		list := heading.NextFiltered("ul, ol")
		if list.Length() == 0 {
			// One intervening paragraph is common before the list.
			list = heading.NextFiltered("p").NextFiltered("ul, ol")
		}

		list.Find("li").Each(func(_ int, li *goquery.Selection) {
			item := strings.TrimSpace(li.Text())
			if item == "" || len(item) > maxItemLength || seen[item] {
				return
			}
			if len(items) >= maxListItems {
				return
			}
			seen[item] = true
			items = append(items, item)
		})
	})

	return items
}

func extractContact(doc *goquery.Document) sourcing.Contact {
	var contact sourcing.Contact

	doc.Find(`a[href^="mailto:"]`).EachWithBreak(func(_ int, sel *goquery.Selection) bool {
		href, _ := sel.Attr("href")
		contact.Email = strings.TrimPrefix(strings.SplitN(href, "?", 2)[0], "mailto:")
		return false
	})

	doc.Find(`a[href^="tel:"]`).EachWithBreak(func(_ int, sel *goquery.Selection) bool {
		href, _ := sel.Attr("href")
		contact.Phone = strings.TrimPrefix(href, "tel:")
		return false
	})

	bodyText := doc.Find("body").Text()
	if contact.Email == "" {
		contact.Email = emailRe.FindString(bodyText)
	}
	if contact.Phone == "" {
		contact.Phone = strings.TrimSpace(phoneRe.FindString(bodyText))
	}

	if addr := strings.TrimSpace(doc.Find("address").First().Text()); addr != "" {
		contact.Address = collapseWhitespace(addr)
	}

	return contact
}

func extractCertifications(bodyText string) []string {
	lower := strings.ToLower(bodyText)

	var certs []string
	seen := make(map[string]bool)
	for _, kw := range certificationKeywords {
		if !seen[kw.name] && strings.Contains(lower, kw.marker) {
			seen[kw.name] = true
			certs = append(certs, kw.name)
		}
	}
	return certs
}

func extractLocation(doc *goquery.Document, seed sourcing.SeedSource) string {
	// The address block and footer are where sites state their location.
	for _, selector := range []string{"address", "footer"} {
		text := doc.Find(selector).First().Text()
		if loc := locationRe.FindString(text); loc != "" {
			return collapseWhitespace(loc)
		}
	}
	return seed.Location
}

func collapseWhitespace(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
