// Package track keeps two live object graphs under watch.
//
// A DirtyTracker holds the difference between two graphs and updates it as
// the graphs report changes: a member notification recomputes that member
// and a collection notification recomputes the changed item. A Synchronizer
// copies every change reported by a source graph into a target graph.
//
// Tracked types report their changes through Notifier and
// CollectionNotifier. VerifyCanTrack lists the types of a graph that do not.
package track
