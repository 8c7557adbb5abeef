package styles

// Tip: To find icons use https://github.com/loichyan/nerdfix

// Banner icons
var (
	IconInfo    = "" // nf-fa-info_circle
	IconSuccess = "" // nf-fa-check_circle
	IconWarning = "" // nf-fa-warning
	IconDanger  = "" // nf-fa-times_circle
)

// Page icons
var (
	IconRefresh   = "" // nf-fa-refresh
	IconSearch    = "" // nf-fa-search
	IconArrowUp   = "" // nf-fa-arrow_up
	IconBuildings = "" // nf-fa-building
)
