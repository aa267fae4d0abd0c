package scraper

// Selector probes, tried in order; first non-empty text wins. Shopee's class
// names churn, so every field carries a data-attribute probe, a class probe
// and a generic tag fallback. These break from time to time — that's the
// nature of page scraping, and the fetcher degrades to empty optional fields
// rather than failing the task.

var titleProbes = []string{
	`[data-sqe="name"] span`,
	`.product-briefing .qaNIZv span`,
	`h1`,
}

var priceProbes = []string{
	`[data-sqe="price"]`,
	`.product-briefing .pqTWkA`,
	`.product-price`,
}

var descriptionProbes = []string{
	`[data-sqe="description"]`,
	`.product-detail ._2u0jt9`,
	`.product-detail p`,
}

var categoryProbes = []string{
	`[data-sqe="breadcrumb"] a:last-child`,
	`.flex.items-center.page-product__breadcrumb a:last-of-type`,
}

var brandProbes = []string{
	`[data-sqe="brand"] a`,
	`.product-detail .brand-name`,
}

// collectImagesJS gathers candidate image URLs from the gallery.
const collectImagesJS = `
(function () {
  var sels = ['.product-images img', '[data-sqe="gallery"] img', '.page-product img'];
  for (var i = 0; i < sels.length; i++) {
    var nodes = document.querySelectorAll(sels[i]);
    if (nodes.length > 0) {
      return Array.prototype.map.call(nodes, function (n) {
        return n.getAttribute('src') || '';
      });
    }
  }
  return [];
})()`

// collectVariantsJS gathers variant option labels.
const collectVariantsJS = `
(function () {
  var sels = ['button.product-variation', '[data-sqe="variation"] button', '.product-variation'];
  for (var i = 0; i < sels.length; i++) {
    var nodes = document.querySelectorAll(sels[i]);
    if (nodes.length > 0) {
      return Array.prototype.map.call(nodes, function (n) {
        return (n.innerText || '').trim();
      });
    }
  }
  return [];
})()`
