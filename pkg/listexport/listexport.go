// Package listexport drives a headless browser through PCPartPicker's
// part-list flow so a local build can be shared as a list URL. The site
// only issues list permalinks to a browser session, hence Playwright
// instead of the colly scraper.
package listexport

import (
	"errors"
	"fmt"

	"github.com/gofiber/fiber/v2/log"
	"github.com/playwright-community/playwright-go"

	"github.com/partforge/PartForge-API/internal/models"
	"github.com/partforge/PartForge-API/pkg/scraper"
)

var errNoExportableParts = errors.New("build has no parts with catalog URLs")

// ExportBuild adds every slotted part that carries a product URL to a
// fresh PCPartPicker list and returns the shareable list URL.
func ExportBuild(region string, parts models.PartSet) (string, error) {
	prefixURL := scraper.RegionPrefixURL(region)
	if !scraper.MatchSiteURL(prefixURL) {
		return "", errors.New("invalid region")
	}

	links := partLinks(parts)
	if len(links) == 0 {
		return "", errNoExportableParts
	}

	pw, browser, page, err := startBrowser()
	if err != nil {
		return "", err
	}
	defer shutdown(pw, browser)

	if err := navigateTo(page, prefixURL); err != nil {
		return "", err
	}

	if err := acceptCookies(page); err != nil {
		log.Warnf("cookie banner not handled, continuing: %v", err)
	}

	for _, link := range links {
		if err := addToList(prefixURL, page, link); err != nil {
			return "", fmt.Errorf("adding %s to the list: %w", link, err)
		}
	}

	return readListURL(page)
}

// partLinks collects product URLs in fixed slot order so the exported
// list is deterministic for a given build.
func partLinks(parts models.PartSet) []string {
	var links []string
	for _, category := range models.Categories {
		if c := parts.Installed(category); c != nil && scraper.MatchProductURL(c.URL) {
			links = append(links, c.URL)
		}
	}
	return links
}

func startBrowser() (*playwright.Playwright, playwright.Browser, playwright.Page, error) {
	log.Info("Starting Playwright for list export")
	pw, err := playwright.Run()
	if err != nil {
		return nil, nil, nil, fmt.Errorf("could not start Playwright: %w", err)
	}
	browser, err := pw.Chromium.Launch()
	if err != nil {
		return nil, nil, nil, fmt.Errorf("could not launch browser: %w", err)
	}
	page, err := browser.NewPage()
	if err != nil {
		return nil, nil, nil, fmt.Errorf("could not create page: %w", err)
	}
	return pw, browser, page, nil
}

func navigateTo(page playwright.Page, url string) error {
	if _, err := page.Goto(url); err != nil {
		return fmt.Errorf("could not navigate to %s: %w", url, err)
	}
	return nil
}

func acceptCookies(page playwright.Page) error {
	return page.GetByLabel("allow cookies").Click()
}

// addToList opens a product page and clicks it into the session's list,
// waiting for the redirect back to the list view.
func addToList(prefixURL string, page playwright.Page, url string) error {
	if err := navigateTo(page, url); err != nil {
		return err
	}
	options := playwright.PageGetByRoleOptions{Name: "Add to Part List"}
	if err := page.GetByRole("link", options).Click(); err != nil {
		return fmt.Errorf("could not click 'Add to Part List': %w", err)
	}

	if _, err := page.ExpectNavigation(func() error {
		return nil
	}); err != nil {
		return fmt.Errorf("error waiting for navigation to start: %w", err)
	}

	if err := page.WaitForURL(prefixURL + "list/"); err != nil {
		return fmt.Errorf("error waiting for redirection to the list: %w", err)
	}
	return nil
}

// readListURL pulls the permalink out of the list page's share textbox.
func readListURL(page playwright.Page) (string, error) {
	textbox := page.GetByRole("textbox")
	if err := textbox.WaitFor(playwright.LocatorWaitForOptions{State: playwright.WaitForSelectorStateAttached}); err != nil {
		return "", err
	}
	if err := textbox.WaitFor(playwright.LocatorWaitForOptions{State: playwright.WaitForSelectorStateVisible}); err != nil {
		return "", fmt.Errorf("could not wait for the share textbox: %w", err)
	}
	return textbox.InputValue()
}

func shutdown(pw *playwright.Playwright, browser playwright.Browser) {
	if err := browser.Close(); err != nil {
		log.Errorf("could not close browser: %v", err)
	}
	if err := pw.Stop(); err != nil {
		log.Errorf("could not stop Playwright: %v", err)
	}
}
