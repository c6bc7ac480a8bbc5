package provider

import (
	"context"
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"

	"recipe-radar/domain"

	"github.com/PuerkitoBio/goquery"
	"github.com/go-resty/resty/v2"
)

type pageClient struct {
	client *resty.Client
}

// NewPageInvestigator builds a PageInvestigator that fetches candidate URLs
// and extracts recipe microdata with goquery.
func NewPageInvestigator() PageInvestigator {
	client := resty.New().
		SetTimeout(30 * time.Second).
		SetHeader("User-Agent", "recipe-radar/1.0")
	return &pageClient{client: client}
}

// quantityPattern matches a leading amount like "2", "0.5" or "1,5".
var quantityPattern = regexp.MustCompile(`^(\d+(?:[.,]\d+)?)\s*([a-zA-Z]*)\s+(.+)$`)

func (c *pageClient) Investigate(ctx context.Context, url string) (*domain.ParsedRecipe, error) {
	resp, err := c.client.R().SetContext(ctx).Get(url)
	if err != nil {
		return nil, &domain.ExternalServiceError{Service: "page fetch", Err: err}
	}
	if resp.IsError() {
		return nil, &domain.ExternalServiceError{
			Service: "page fetch",
			Err:     fmt.Errorf("status %d for %s", resp.StatusCode(), url),
		}
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(string(resp.Body())))
	if err != nil {
		// Unparseable content is a rejection, not a pipeline failure.
		return nil, nil
	}

	parsed := &domain.ParsedRecipe{
		Title: strings.TrimSpace(doc.Find(`[itemprop="name"]`).First().Text()),
	}
	if parsed.Title == "" {
		parsed.Title = strings.TrimSpace(doc.Find("title").First().Text())
	}

	doc.Find(`[itemprop="recipeIngredient"], [itemprop="ingredients"]`).Each(func(_ int, s *goquery.Selection) {
		line := strings.TrimSpace(s.Text())
		if line == "" {
			return
		}
		parsed.Ingredients = append(parsed.Ingredients, parseIngredientLine(line))
	})

	var steps []string
	doc.Find(`[itemprop="recipeInstructions"]`).Each(func(_ int, s *goquery.Selection) {
		if step := strings.TrimSpace(s.Text()); step != "" {
			steps = append(steps, step)
		}
	})
	parsed.Instructions = strings.Join(steps, "\n")

	if content, ok := doc.Find(`meta[itemprop="totalTime"]`).Attr("content"); ok {
		parsed.TimeEstimateMinutes = parseISODurationMinutes(content)
	}
	if img, ok := doc.Find(`[itemprop="image"]`).Attr("src"); ok {
		parsed.ImageURL = img
	}

	// Without a title and at least one ingredient the page is not a
	// usable recipe.
	if parsed.Title == "" || len(parsed.Ingredients) == 0 || parsed.Instructions == "" {
		return nil, nil
	}
	return parsed, nil
}

func parseIngredientLine(line string) domain.ParsedIngredient {
	if m := quantityPattern.FindStringSubmatch(line); m != nil {
		qty, err := strconv.ParseFloat(strings.ReplaceAll(m[1], ",", "."), 64)
		if err == nil {
			unit := m[2]
			if unit == "" {
				unit = "piece"
			}
			return domain.ParsedIngredient{
				Description: strings.TrimSpace(m[3]),
				Quantity:    qty,
				Unit:        unit,
			}
		}
	}
	return domain.ParsedIngredient{Description: line, Quantity: 1, Unit: "piece"}
}

// parseISODurationMinutes handles the PT#H#M durations found in recipe
// microdata. Anything else yields zero.
func parseISODurationMinutes(value string) int {
	value = strings.TrimPrefix(strings.ToUpper(value), "PT")
	minutes := 0
	if i := strings.Index(value, "H"); i > 0 {
		if h, err := strconv.Atoi(value[:i]); err == nil {
			minutes += h * 60
		}
		value = value[i+1:]
	}
	if i := strings.Index(value, "M"); i > 0 {
		if m, err := strconv.Atoi(value[:i]); err == nil {
			minutes += m
		}
	}
	return minutes
}
