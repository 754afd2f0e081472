// Package shell provides the root UI object and the host it is shown in.
//
// Rendering is out of scope: MainWindow only tracks whether it was shown and
// which region targets it declares, which is all the bootstrap sequence and
// the region manager need from it.
package shell
