// Package transform derives new graphs from an interaction network.
//
// # Overview
//
// Every function here is pure: it reads a [network.Graph] and returns a new
// one, leaving the input untouched. The session layer decides which result
// replaces the working graph or a registry entry.
//
// # Decomposition
//
// [Decompose] splits a graph into connected components, keeps those with at
// least [DefaultMinNodes] nodes, ranks them by size and names them
// subnetwork1..k. Callers must distinguish [Decomposition.Found] (every
// qualifying component) from [Decomposition.Kept] (the capped, registered
// set). [RecomputeStats] re-ranks an edited registry without renaming.
//
// # Filtering
//
// [CorrelationFilter] selects edges from the original edge table by
// coefficient band and significance. [FilterTopology] removes low-degree or
// low-betweenness nodes of one [Role]; it does not remove the orphans it
// creates. [Exclude], by contrast, cascades to every node left isolated.
//
// # Seed Subgraphs and Modules
//
// [MinimalConnected] prunes dead ends, triages seeds by degree and keeps the
// union of pairwise shortest paths between seeds. [ExtractModule] applies the
// same path union to a user-chosen node set unless that set is already
// connected.
package transform
