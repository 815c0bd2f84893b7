package scraper

import (
	"errors"
	"strconv"
	"strings"

	"github.com/gocolly/colly/v2"
	"github.com/gocolly/colly/v2/extensions"
	"github.com/gofiber/fiber/v2/log"

	"github.com/partforge/PartForge-API/internal/models"
)

var (
	priceCellMappings = map[string]string{
		"Base":     ".td__base",
		"Promo":    ".td__promo",
		"Shipping": ".td__shipping",
		"Tax":      ".td__tax",
		"Total":    ".td__finalPrice",
	}

	// listCategoryNames maps PCPartPicker's part-list row labels onto our
	// build slots. Rows with no mapping (monitors, peripherals) are kept
	// out of the part set.
	listCategoryNames = map[string]models.Category{
		"CPU":          models.CategoryCPU,
		"CPU Cooler":   models.CategoryCooling,
		"Motherboard":  models.CategoryMotherboard,
		"Memory":       models.CategoryRAM,
		"Storage":      models.CategoryStorage,
		"Video Card":   models.CategoryGPU,
		"Case":         models.CategoryCase,
		"Power Supply": models.CategoryPSU,
	}
)

// Scraper wraps a shared colly collector pointed at PCPartPicker. It is
// the catalog layer: search results and product pages come back as
// models types the compatibility engine can consume.
type Scraper struct {
	Collector *colly.Collector
	Headers   map[string]map[string]string
}

// RedirectError signals that a search collapsed to a single product page;
// the URL it carries can be fed straight to GetPart.
type RedirectError struct {
	URL string
}

func (r RedirectError) Error() string {
	return r.URL
}

// NewScraper initializes a collector with async visits and URL revisiting
// allowed, plus an empty global header set.
func NewScraper() Scraper {
	col := colly.NewCollector()
	col.Async = true
	col.AllowURLRevisit = true

	s := Scraper{
		Collector: col,
	}
	s.Headers = map[string]map[string]string{
		"global": {},
	}

	return s
}

// UpdateHeaders merges newHeaders into the header set for the given site
// and arranges for requests to carry the global headers plus the
// site-specific ones for their host.
func (scrap *Scraper) UpdateHeaders(site string, newHeaders map[string]string) {
	scrap.Headers[site] = newHeaders

	for k, v := range newHeaders {
		scrap.Headers[site][k] = v
	}

	scrap.Collector.OnRequest(func(r *colly.Request) {
		headers := scrap.Headers["global"]
		for k, v := range scrap.Headers[r.URL.Hostname()] {
			headers[k] = v
		}

		for k, v := range headers {
			if len(k) > 0 && len(v) > 0 {
				r.Headers.Set(k, v)
			}
		}
	})
}

func (scrap *Scraper) RandomizeUserAgent() {
	extensions.RandomUserAgent(scrap.Collector)
	scrap.Collector.OnRequest(func(r *colly.Request) {
		log.Info("User-Agent:", r.Headers.Get("User-Agent"))
	})
}

// SearchParts runs a catalog search and returns the result rows. When the
// site redirects a specific enough query straight to a product page, the
// returned error is a RedirectError carrying that page's URL.
func (scrap *Scraper) SearchParts(searchTerm string, region string) ([]models.SearchPart, error) {
	fullURL := searchURL(searchTerm, region)

	if !MatchSiteURL(fullURL) {
		return nil, errors.New("invalid region")
	}

	searchResults := []models.SearchPart{}

	var reqURL string

	scrap.Collector.OnHTML(".pageTitle", func(h *colly.HTMLElement) {
		reqURL = h.Request.URL.String()
	})

	scrap.Collector.OnHTML(".search-results__pageContent .block", func(elem *colly.HTMLElement) {
		elem.ForEach(".list-unstyled li", func(i int, searchResult *colly.HTMLElement) {
			searchResultURL := linkURL("https://", elem.Request.URL.Host, searchResult.ChildAttr(".search_results--price a", "href"))
			extractedPrice := searchResult.ChildText(".search_results--price a")

			price, curr, _ := models.ParsePrice(extractedPrice)

			extractedVendorName := ""

			if extractedPrice != "" {
				extractedVendorName = extractVendorName(searchResultURL)
			}

			partVendor := models.Vendor{
				URL:  searchResultURL,
				Name: extractedVendorName,
				Price: models.Price{
					Total:       price,
					TotalString: extractedPrice,
					Currency:    curr,
				},
				InStock: len(extractedPrice) > 0,
			}

			searchResults = append(searchResults, models.SearchPart{
				Name:   searchResult.ChildText(".search_results--link a"),
				Image:  linkURL("https:", searchResult.ChildAttr(".search_results--img a img", "src")),
				URL:    linkURL("https://", elem.Request.URL.Host, searchResult.ChildAttr(".search_results--link a", "href")),
				Vendor: partVendor,
			})
		})
	})

	err := scrap.Collector.Visit(fullURL)
	scrap.Collector.Wait()

	if err != nil {
		return nil, err
	}

	if MatchProductURL(reqURL) {
		return nil, &RedirectError{
			URL: reqURL,
		}
	}

	return searchResults, nil
}

// GetPart scrapes a single product page: name, rating, vendor offers,
// images and the full specification groups.
func (scrap *Scraper) GetPart(URL string) (*models.Part, error) {
	if !MatchProductURL(URL) {
		return nil, errors.New("invalid part URL")
	}

	var images []string

	scrap.Collector.OnHTML(".single_image_gallery_box", func(image *colly.HTMLElement) {
		images = append(images, linkURL("https:", image.ChildAttr("a img", "src")))
	})

	if len(images) < 1 {
		scrap.Collector.OnHTML("script", func(script *colly.HTMLElement) {
			images = scriptImages(script, images)
		})
	}

	rating := models.RatingStats{}
	var name string

	scrap.Collector.OnHTML(".wrapper__pageTitle section.xs-col-11", func(ratingContainer *colly.HTMLElement) {
		var stars uint
		ratingContainer.ForEach(".product--rating li", func(i int, _ *colly.HTMLElement) {
			stars += 1
		})

		rating.Stars = stars
		name = ratingContainer.ChildText(".pageTitle")

		splitParts := strings.Split(strings.TrimSpace(strings.ReplaceAll(strings.ReplaceAll(ratingContainer.Text, name, ""), ratingContainer.ChildText(".breadcrumb"), "")), ",")

		if len(splitParts) < 2 {
			return
		}

		countParse, _ := strconv.Atoi(strings.Trim(strings.ReplaceAll(splitParts[0], "Ratings", ""), "( "))
		rating.Count = uint(countParse)

		averageParse, _ := strconv.ParseFloat(strings.Trim(strings.ReplaceAll(splitParts[1], "Average", ""), ") "), 64)
		rating.Average = averageParse
	})

	var vendors []models.Vendor

	scrap.Collector.OnHTML("#prices table tbody tr", func(vendor *colly.HTMLElement) {
		if vendor.Attr("class") != "" {
			return
		}

		price := models.Price{}

		for k, v := range priceCellMappings {
			stringPrice := vendor.ChildText(v)
			val, curr, _ := models.ParsePrice(stringPrice)

			switch k {
			case "Base":
				price.Base = val
			case "Shipping":
				price.Shipping = val
			case "Tax":
				price.Tax = val
			case "Promo":
				price.Discounts = val
			case "Total":
				price.Total = val
				price.Currency = curr
				price.TotalString = stringPrice
			}
		}

		vendors = append(vendors, models.Vendor{
			Name:    vendor.ChildAttr(".td__logo a img", "alt"),
			Image:   linkURL("https:", vendor.ChildAttr(".td__logo a img", "src")),
			InStock: vendor.ChildText(".td__availability") == "In stock",
			URL:     linkURL("https://", vendor.Request.URL.Host, vendor.ChildAttr(".td__finalPrice a", "href")),
			Price:   price,
		})
	})

	var specs []models.PartSpec

	scrap.Collector.OnHTML(".specs", func(specsContainer *colly.HTMLElement) {
		if len(specs) > 0 {
			return
		}
		specsContainer.ForEach(".group", func(i int, spec *colly.HTMLElement) {
			var values []string

			spec.ForEach(".group__content li", func(i int, specValue *colly.HTMLElement) {
				values = append(values, specValue.Text)
			})

			if len(values) == 0 {
				values = []string{spec.ChildText(".group__content")}
			}

			specs = append(specs, models.PartSpec{
				Name:   spec.ChildText(".group__title"),
				Values: values,
			})
		})

	})

	err := scrap.Collector.Visit(URL)
	scrap.Collector.Wait()

	if err != nil {
		return nil, err
	}

	return &models.Part{
		Name:    name,
		URL:     URL,
		Rating:  rating,
		Specs:   specs,
		Vendors: vendors,
		Images:  images,
	}, nil
}

// GetComponent scrapes a product page and flattens it into the build-slot
// form the compatibility engine reads.
func (scrap *Scraper) GetComponent(URL string, category models.Category) (*models.Component, error) {
	part, err := scrap.GetPart(URL)
	if err != nil {
		return nil, err
	}
	component := part.Component(category)
	component.URL = URL
	return &component, nil
}

// ImportList pulls a shared part list into a PartSet. List rows only carry
// a name, price and product URL, so the imported components have no
// specification text; the compatibility engine still estimates power from
// the names and its rules abstain where data is missing.
func (scrap *Scraper) ImportList(URL string) (models.PartSet, error) {
	if !MatchSiteURL(URL) || !MatchPartListURL(URL) {
		return nil, errors.New("invalid part list URL")
	}
	URL = canonicalListURL(URL)

	parts := models.PartSet{}

	scrap.Collector.OnHTML(".partlist__wrapper", func(elem *colly.HTMLElement) {
		elem.ForEach(".tr__product", func(i int, prod *colly.HTMLElement) {
			category, ok := listCategoryNames[strings.TrimSpace(prod.ChildText(".td__component"))]
			if !ok {
				return
			}
			if _, taken := parts[category]; taken {
				// A build holds one component per slot; extra rows
				// (second drives, extra fans) are dropped.
				return
			}

			total := 0.0
			toParse := prod.ChildText(".td__price")
			if !strings.HasSuffix(toParse, "No Prices Available") && toParse != "FREE" {
				total, _, _ = models.ParsePrice(strings.Replace(toParse, "Price", "", 1))
			}

			parts[category] = &models.Component{
				Name:     prod.ChildText(".td__name"),
				Category: category,
				Price:    total,
				URL:      linkURL("https://", elem.Request.URL.Host, prod.ChildAttr(".td__name a", "href")),
			}
		})
	})

	err := scrap.Collector.Visit(URL)
	scrap.Collector.Wait()

	if err != nil {
		return nil, err
	}

	return parts, nil
}
