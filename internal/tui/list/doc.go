// Package listview provides a scrolling, selectable grid of rendered items
// for Bubble Tea views.
//
// Items are laid out left to right in a fixed number of columns. Only the
// rows that fit the viewport are rendered, and the viewport follows the
// selection. Navigation:
//   - up/down (k/j) move one row
//   - left/right move one item
//   - home/end jump to the first and last item
package listview
