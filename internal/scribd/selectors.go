package scribd

// Locator patterns for the elements the downloader cares about. Order
// matters: each list is tried front to back and the strategies treat the
// position as priority. Scribd reworks its markup often, so these lists
// mix current and legacy class names.

// DownloadButtonSelectors locate a clickable download control.
var DownloadButtonSelectors = []string{
	`button[data-testid="download-button"]`,
	`.download_button`,
	`[aria-label*="download"]`,
	`.btn-download`,
	`#download-btn`,
}

// PageSelectors locate the rendered document page containers used for
// screenshot capture.
var PageSelectors = []string{
	`.page`,
	`.document_page`,
	`[data-page]`,
	`.text_layer`,
	`.page-container`,
	`.document-page`,
}

// TextSelectors locate text-bearing elements. Unlike the other lists,
// the text strategy accumulates matches from every pattern.
var TextSelectors = []string{
	`.text_layer`,
	`.page_text`,
	`.document_content`,
	`p`,
	`.text`,
	`.content-text`,
	`.document-text`,
}

// TitleSelectors locate the document title, most specific first.
var TitleSelectors = []string{
	`h1.document_title`,
	`.document-title`,
	`h1`,
	`title`,
	`.title`,
	`.doc-title`,
}
