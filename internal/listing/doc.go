// package listing holds the show-listing state machine.
//
// Filters live in the URL. [Parse] and [Serialize] map query parameters to [Filters] and back;
// every filter change drops the page parameter and is written with [History.Replace], while page
// changes go through [Navigator.GoTo] and [History.Push] so that back and forward walk pages but
// not filter edits.
//
// [Controller] owns the fetch lifecycle for one page of shows. Requests are tagged with a
// monotonic token and a response is applied only when its token is still the latest, so a slow
// stale response can never overwrite a newer one.
//
// [Expansion] tracks which rows show extra detail. Wide viewports expand rows inline (any number
// at once); narrow viewports take over with a single focused show. The viewport class is read at
// every interaction, never cached from construction.
package listing
