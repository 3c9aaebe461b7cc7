// Package nodeconfig reads the configuration of a CI node,
// as it has been written by the subscription tooling, in INI format:
//
//  [local]
//  config_file = /srv/physaci/conf.ini
//
//  [node_server]
//  node_sig_key = (shared secret)
//
// Section "local" provides defaults to all other sections.
// Its 'config_file' can redirect to another file, whose values
// are merged over those of the first.
package nodeconfig // import "blitznote.com/src/node.sigauth/nodeconfig"
