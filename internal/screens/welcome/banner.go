package welcome

import (
	"charm.land/lipgloss/v2"

	"github.com/abhisek/cinematch/internal/ui/theme"
)

const bannerArt = `
  ██████╗██╗███╗   ██╗███████╗███╗   ███╗ █████╗ ████████╗ ██████╗██╗  ██╗
 ██╔════╝██║████╗  ██║██╔════╝████╗ ████║██╔══██╗╚══██╔══╝██╔════╝██║  ██║
 ██║     ██║██╔██╗ ██║█████╗  ██╔████╔██║███████║   ██║   ██║     ███████║
 ██║     ██║██║╚██╗██║██╔══╝  ██║╚██╔╝██║██╔══██║   ██║   ██║     ██╔══██║
 ╚██████╗██║██║ ╚████║███████╗██║ ╚═╝ ██║██║  ██║   ██║   ╚██████╗██║  ██║
  ╚═════╝╚═╝╚═╝  ╚═══╝╚══════╝╚═╝     ╚═╝╚═╝  ╚═╝   ╚═╝    ╚═════╝╚═╝  ╚═╝`

const bannerCompact = "C I N E M A T C H"

// bannerMinWidth is the narrowest terminal that fits the block letters.
const bannerMinWidth = 78

// RenderBanner returns the CINEMATCH banner in the marquee color, falling
// back to spaced letters on narrow terminals.
func RenderBanner(width int) string {
	style := lipgloss.NewStyle().
		Foreground(theme.Marquee).
		Bold(true)

	if width < bannerMinWidth {
		return style.Render(bannerCompact)
	}
	return style.Render(bannerArt)
}
