// This file exists so that "go doc github.com/flowlens/flowlens" displays something
// useful.

/*
Flowlens reads a firewall traffic log - a Huawei USG CSV export or a Fortigate text
log - and answers the two questions every traffic review starts with: which of our
networks does this source address belong to, and who is this destination really?

Source addresses are attributed to their most specific prefix in a NetBox address
registry, with the registry's VLAN, description, role and tenant metadata carried
along. Destination addresses are reverse-resolved concurrently against public DNS.
The enriched records are grouped, counted and written to the console, optionally CSV,
and an Excel workbook.

Project site: https://github.com/flowlens/flowlens
*/
package main
