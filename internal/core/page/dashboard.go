package page

// Stable identifiers the BizFindr templates render and the handlers look up.
const (
	ClassAlertsContainer = "alerts-container"
	TagMain              = "main"

	IDStatsCount      = "stats-count"
	IDRefreshData     = "refresh-data"
	IDSearchForm      = "searchForm"
	IDClearFilters    = "clearFilters"
	IDConfirmDelete   = "confirmDeleteModal"
	IDDeleteForm      = "deleteForm"
	IDDeleteItemName  = "deleteItemName"
	IDBackToTop       = "backToTop"
	IDBusinessTypes   = "businessTypesChart"
	IDRegistrationTrd = "registrationTrendsChart"

	AttrDisabled  = "disabled"
	AttrChartData = "data-chart-data"
	AttrNoLoading = "data-no-loading"
	AttrAction    = "action"
	AttrHref      = "href"

	// Tab identifiers used by the dashboard tab strip.
	TabOverview      = "#overview"
	TabNotifications = "#notifications"
)

// DashboardTabs lists the dashboard tabs in display order.
var DashboardTabs = []string{TabOverview, TabNotifications}

// NewDashboard builds the standard BizFindr page skeleton: a navbar with the
// refresh trigger and stat target, the alerts surface, and a main region with
// the search form, tab strip, chart mounts and delete dialog.
func NewDashboard() *Document {
	doc := NewDocument()
	body := doc.Root()

	navbar := New("nav", WithClass("navbar"), WithChildren(
		New("a", WithClass("navbar-brand"), WithText("BizFindr")),
		New("button", WithID(IDRefreshData), WithClass("btn btn-outline-light"), WithText("Refresh Data")),
		New("span", WithID(IDStatsCount), WithClass("navbar-text")),
	))

	search := New("form", WithID(IDSearchForm), WithAttr(AttrAction, "/search"), WithChildren(
		New("input", WithAttr("type", "search"), WithAttr("name", "q")),
		New("select", WithAttr("name", "business_type")),
		New("select", WithAttr("name", "status")),
		New("input", WithAttr("type", "date"), WithAttr("name", "registered_after")),
		New("button", WithAttr("type", "submit"), WithText("Search")),
		New("button", WithID(IDClearFilters), WithAttr("type", "button"), WithText("Clear")),
	))

	tabs := New("ul", WithClass("nav nav-tabs"))
	for i, tab := range DashboardTabs {
		label := "Overview"
		if tab == TabNotifications {
			label = "Notifications"
		}
		link := New("a", WithClass("nav-link"),
			WithAttr("data-bs-toggle", "tab"),
			WithAttr(AttrHref, tab),
			WithText(label),
		)
		if i == 0 {
			WithClass("active")(link)
		}
		WithChildren(New("li", WithClass("nav-item"), WithChildren(link)))(tabs)
	}

	deleteModal := New("div", WithID(IDConfirmDelete), WithClass("modal"), WithChildren(
		New("span", WithID(IDDeleteItemName)),
		New("form", WithID(IDDeleteForm), WithAttr(AttrAction, "/businesses/0/delete"), WithChildren(
			New("button", WithAttr("type", "submit"), WithAttr(AttrNoLoading, ""), WithText("Delete")),
		)),
	))

	main := New(TagMain, WithChildren(
		search,
		tabs,
		New("canvas", WithID(IDBusinessTypes)),
		New("canvas", WithID(IDRegistrationTrd)),
		deleteModal,
	))

	doc.Append(body, navbar)
	doc.Append(body, New("div", WithClass(ClassAlertsContainer)))
	doc.Append(body, main)
	doc.Append(body, New("a", WithID(IDBackToTop), WithClass("back-to-top"), WithAttr(AttrHref, "#")))

	return doc
}
