// internal/platform/ui/ascii.go
package ui

// Banner se muestra sobre la cabecera del modo interactivo
const Banner = `
╔═══════════════════════════════════════╗
║                                       ║
║    WAYBACKGA                          ║
║    Analytics IDs through time         ║
║    ════════════════════               ║
║    UA · G- · GTM on the Wayback       ║
║                                       ║
╚═══════════════════════════════════════╝
`
