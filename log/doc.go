/*
Package log provides global output control across the whole application. Logging comes
in four levels: Silent, Major, Minor and Debug with each level more detailed than the
previous. Levels are inclusive, so, e.g., if MinorLevel is set that implies MajorLevel
logging as well.

Once command-line parsing has completed successfully all program output should go via
this package so that a test - or a pipeline embedding flowlens - can capture or discard
it by swapping the io.Writer with SetOut().
*/
package log
