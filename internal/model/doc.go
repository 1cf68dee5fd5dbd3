package model

// Package model defines domain data structures shared by the bot router and
// the download pipeline: download requests, resolved media metadata, status
// enums, and terminal outcomes. Structures are plain values with explicit
// state transitions and no I/O.
