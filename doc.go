/*
Package logsim provides the data model and simulation engine for a small
hardware description language: typed devices, point-to-point signal
connections and a set of monitored signals.

The hdl sub-package compiles source text into a validated *Netlist. A
Simulator then advances the network in discrete ticks (source update,
bounded combinational settling, clocked-state update, monitor recording)
and exposes the result as a per-signal waveform Trace.

*/
package logsim
