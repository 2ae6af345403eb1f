package styles

// Tip: To find icons use https://github.com/loichyan/nerdfix

// Toast icons.
var (
	IconToastSuccess = "" // nf-fa-check_circle
	IconToastError   = "" // nf-fa-times_circle
	IconToastInfo    = "" // nf-fa-info_circle
	IconToastWarning = "" // nf-fa-warning
	IconToastLoading = "" // nf-fa-spinner
)

// Feed icons.
var (
	IconHeart        = "" // nf-fa-heart
	IconHeartOutline = "" // nf-fa-heart_o
	IconComment      = "" // nf-fa-comment
	IconImage        = "" // nf-fa-image
	IconProfile      = "" // nf-fa-user
	IconPending      = "" // nf-fa-clock_o
)
