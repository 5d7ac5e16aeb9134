// internal/testutil/fixtures.go
package testutil

import "strings"

// Fixture data para tests (valores primitivos solamente, sin dependencias de domain)

// FixtureURLs contiene URLs de prueba.
var FixtureURLs = []string{
	"example.com",
	"https://example.org",
	"news.example.net/path",
}

// FixtureTimestamps son capturas ordenadas de una misma URL.
var FixtureTimestamps = []string{
	"20121015000000",
	"20130220101010",
	"20150101000000",
	"20190707070707",
}

// FixtureHTMLWithCodes tiene un código UA en un script y el mismo código en
// texto visible, además de un GTM y un G-.
const FixtureHTMLWithCodes = `<!DOCTYPE html>
<html>
<head>
  <script async src="https://www.googletagmanager.com/gtag/js?id=UA-12345678-1"></script>
  <script>
    window.dataLayer = window.dataLayer || [];
    function gtag(){dataLayer.push(arguments);}
    gtag("config","UA-12345678-1");
    gtag("config","G-1234567890");
  </script>
  <script>(function(w,d,s,l,i){})(window,document,'script','dataLayer','GTM-ABC123');</script>
</head>
<body>
  <p>Our tracking id is UA-12345678-1 and we also used UA-99999999-9 once.</p>
</body>
</html>`

// FixtureHTMLBodyOnly tiene códigos solamente fuera de scripts.
const FixtureHTMLBodyOnly = `<html><body><pre>ga('create', 'UA-55555555-5');</pre><p>GTM-NOPE1</p></body></html>`

// FixtureHTMLNoScripts es una página sin scripts.
const FixtureHTMLNoScripts = `<html><head><title>plain</title></head><body>hello</body></html>`

// FixtureCDXBody construye una respuesta del índice CDX en formato JSON.
func FixtureCDXBody(timestamps ...string) string {
	var b strings.Builder
	b.WriteString(`[["timestamp"]`)
	for _, ts := range timestamps {
		b.WriteString(`,["`)
		b.WriteString(ts)
		b.WriteString(`"]`)
	}
	b.WriteString(`]`)
	return b.String()
}

// FixtureSnapshotHTML devuelve una página con los identificadores dados dentro de un script.
func FixtureSnapshotHTML(ids ...string) string {
	var b strings.Builder
	b.WriteString("<html><head><script>")
	for _, id := range ids {
		b.WriteString(`gtag("config","`)
		b.WriteString(id)
		b.WriteString(`");`)
	}
	b.WriteString("</script></head><body></body></html>")
	return b.String()
}
