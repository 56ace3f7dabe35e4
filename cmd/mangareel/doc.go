// Command mangareel generates daily manga recommendation videos and manages
// the rotation state behind them.
package main
