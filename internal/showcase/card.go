package showcase

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// DefaultCardSelector matches the summary cards on essay and project listings.
const DefaultCardSelector = ".card"

// FindCard returns the card on a listing page that belongs to documentName.
//
// A card whose link points at documentName (same final path segment) is preferred.
// Otherwise the first card whose markup contains documentName is used. At most one
// card is returned; nil means no card matched.
func FindCard(doc *goquery.Document, selector, documentName string) *goquery.Selection {
	if documentName == "" {
		return nil
	}
	if selector == "" {
		selector = DefaultCardSelector
	}
	cards := doc.Find(selector)

	exact := cards.FilterFunction(func(_ int, card *goquery.Selection) bool {
		return linksTo(card, documentName)
	})
	if exact.Length() > 0 {
		return exact.First()
	}

	loose := cards.FilterFunction(func(_ int, card *goquery.Selection) bool {
		markup, err := goquery.OuterHtml(card)
		return err == nil && strings.Contains(markup, documentName)
	})
	if loose.Length() > 0 {
		return loose.First()
	}
	return nil
}

// linksTo reports whether any anchor in or at card links to documentName.
func linksTo(card *goquery.Selection, documentName string) bool {
	found := false
	anchors(card).EachWithBreak(func(_ int, a *goquery.Selection) bool {
		href, ok := a.Attr("href")
		if ok && lastSegment(href) == documentName {
			found = true
			return false
		}
		return true
	})
	return found
}

// anchors returns the <a> elements inside card, including card itself.
func anchors(card *goquery.Selection) *goquery.Selection {
	return card.Find("a").AddSelection(card.Filter("a"))
}

// RewriteCard returns the outer HTML of a copy of card with every relative link
// and image source made absolute against base, and every anchor opening in a new
// browsing context. The listing document is not modified.
func RewriteCard(card *goquery.Selection, base string) (string, error) {
	clone := card.Clone()

	anchors(clone).Each(func(_ int, a *goquery.Selection) {
		if href, ok := a.Attr("href"); ok {
			a.SetAttr("href", ToAbsoluteURL(href, base))
		}
		a.SetAttr("target", "_blank")
	})

	clone.Find("img").AddSelection(clone.Filter("img")).Each(func(_ int, img *goquery.Selection) {
		if src, ok := img.Attr("src"); ok {
			img.SetAttr("src", ToAbsoluteURL(src, base))
		}
	})

	return goquery.OuterHtml(clone)
}
