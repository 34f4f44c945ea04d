package site2pdf

import (
	"fmt"
	"regexp"
	"strings"
)

// tailwindCDNURL is the runtime utility-CSS engine loaded when no
// precompiled stylesheet exists.
const tailwindCDNURL = "https://cdn.tailwindcss.com"

// styleProbeID marks the hidden element the readiness controller inspects
// to detect that utility classes have been applied.
const styleProbeID = "s2p-style-probe"

// styleProbeHTML carries a utility class whose computed background must
// differ from transparent once the CDN engine has generated styles.
const styleProbeHTML = `<div id="` + styleProbeID + `" class="bg-slate-900" aria-hidden="true" style="position:fixed;top:-9999px;left:-9999px;width:1px;height:1px"></div>`

var (
	// cdnScriptPattern matches the utility-CSS CDN script tag in any
	// attribute order.
	cdnScriptPattern = regexp.MustCompile(`(?i)<script[^>]*src=["'][^"']*cdn\.tailwindcss\.com[^"']*["'][^>]*>\s*</script>`)

	// analyticsSrcPattern matches external analytics loaders that would
	// fire network requests during the snapshot.
	analyticsSrcPattern = regexp.MustCompile(`(?i)<script[^>]*src=["'][^"']*(?:googletagmanager\.com|google-analytics\.com|plausible\.io|cdn\.segment\.com)[^"']*["'][^>]*>\s*</script>`)

	// inlineInterferencePattern matches inline scripts driving analytics or
	// smooth scrolling, both of which make the snapshot non-deterministic.
	inlineInterferencePattern = regexp.MustCompile(`(?is)<script(?:\s[^>]*)?>[^<]*(?:gtag\(|dataLayer|behavior:\s*['"]smooth['"])[^<]*</script>`)
)

// printCSS is injected into every render regardless of style method. It
// forces exact color reproduction, freezes animations at their final
// visual state, keeps sections and images on a single page, preserves
// blur/shadow effects, and controls orphan/widow lines.
const printCSS = `
*, *::before, *::after {
  -webkit-print-color-adjust: exact !important;
  print-color-adjust: exact !important;
}
* {
  animation-duration: 0.001s !important;
  animation-delay: 0s !important;
  animation-iteration-count: 1 !important;
  animation-fill-mode: forwards !important;
  transition-duration: 0.001s !important;
  transition-delay: 0s !important;
}
html {
  scroll-behavior: auto !important;
}
section, article, figure, img {
  break-inside: avoid;
  page-break-inside: avoid;
}
[class*="backdrop-blur"] {
  -webkit-backdrop-filter: blur(8px) !important;
  backdrop-filter: blur(8px) !important;
}
[class*="shadow"] {
  box-shadow: var(--tw-shadow, 0 1px 3px rgba(0, 0, 0, 0.1)) !important;
}
p, li {
  orphans: 3;
  widows: 3;
}
`

// htmlOptimizer rewrites source HTML to apply the resolved style strategy
// and the print-specific overrides.
type htmlOptimizer struct{}

// Optimize applies the style strategy and print CSS to the HTML document.
//
// Precompiled: the CDN script tag is stripped and the compiled stylesheet
// is inlined, so the page never reaches for the network engine.
// CDN fallback: the CDN script tag is guaranteed present and a hidden
// probe element is added for the readiness controller.
//
// Both paths strip analytics and smooth-scroll scripts and inject the
// print-optimization CSS. The document structure (single head and body)
// is preserved.
func (o *htmlOptimizer) Optimize(htmlContent string, style ResolvedStyle) string {
	out := stripInterferingScripts(htmlContent)

	switch style.Method {
	case StylePrecompiled:
		out = cdnScriptPattern.ReplaceAllString(out, "")
		out = injectIntoHead(out, "<style>"+sanitizeCSS(style.CSS)+"</style>")
	case StyleCDNFallback:
		if !strings.Contains(strings.ToLower(out), "cdn.tailwindcss.com") {
			out = injectIntoHead(out, fmt.Sprintf(`<script src=%q></script>`, tailwindCDNURL))
		}
		out = injectIntoBody(out, styleProbeHTML)
	}

	return injectIntoHead(out, "<style>"+printCSS+"</style>")
}

// stripInterferingScripts removes analytics loaders and smooth-scroll
// handlers that could mutate the page after the readiness checks pass.
func stripInterferingScripts(htmlContent string) string {
	out := analyticsSrcPattern.ReplaceAllString(htmlContent, "")
	return inlineInterferencePattern.ReplaceAllString(out, "")
}

// injectIntoHead inserts a fragment before </head>.
// Tries </head> first, then <body>, then prepends to the HTML.
func injectIntoHead(htmlContent, fragment string) string {
	lowerHTML := strings.ToLower(htmlContent)

	if idx := strings.Index(lowerHTML, "</head>"); idx != -1 {
		return htmlContent[:idx] + fragment + htmlContent[idx:]
	}

	if idx := strings.Index(lowerHTML, "<body"); idx != -1 {
		if closeIdx := strings.Index(htmlContent[idx:], ">"); closeIdx != -1 {
			insertPos := idx + closeIdx + 1
			return htmlContent[:insertPos] + fragment + htmlContent[insertPos:]
		}
	}

	return fragment + htmlContent
}

// injectIntoBody inserts a fragment right after the opening <body> tag.
// Falls back to appending before </html>, then to plain append.
func injectIntoBody(htmlContent, fragment string) string {
	lowerHTML := strings.ToLower(htmlContent)

	if idx := strings.Index(lowerHTML, "<body"); idx != -1 {
		if closeIdx := strings.Index(htmlContent[idx:], ">"); closeIdx != -1 {
			insertPos := idx + closeIdx + 1
			return htmlContent[:insertPos] + fragment + htmlContent[insertPos:]
		}
	}

	if idx := strings.Index(lowerHTML, "</html>"); idx != -1 {
		return htmlContent[:idx] + fragment + htmlContent[idx:]
	}

	return htmlContent + fragment
}

// sanitizeCSS escapes sequences that could break out of a <style> block.
func sanitizeCSS(css string) string {
	return strings.ReplaceAll(css, "</", `<\/`)
}
