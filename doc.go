/*
 * doc.go, part of fftool.
 *
 * This program is free software; you can redistribute it and/or modify
 * it under the terms of the GNU Lesser General Public License as
 * published by the Free Software Foundation; either version 2.1 of the
 * License, or (at your option) any later version.
 *
 * This program is distributed in the hope that it will be useful,
 * but WITHOUT ANY WARRANTY; without even the implied warranty of
 * MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
 * GNU General Public License for more details.
 *
 * You should have received a copy of the GNU Lesser General
 * Public License along with this program.  If not, see
 * <http://www.gnu.org/licenses/>.
 *
 */

//Package fftool builds typed molecular topologies for MD simulations.
//It reads molecule descriptions (z-matrix, MDL mol, PDB or xyz), places
//internal coordinates in Cartesian space, derives or reads connectivity,
//enumerates angles, dihedrals and impropers from the bond graph, and
//assigns force-field atom types and bonded parameters from a parameter
//database, validating the assignment against the observed geometry.
//Several molecular species are then consolidated into a System with
//global type tables and van der Waals cross terms, ready to be written
//out for a simulation engine (see the lmp and pack subpackages).
//
//Periodic boxes, including triclinic ones, are supported through the
//Cell type, which handles fractional/Cartesian transforms and
//minimum-image corrections for the geometric checks.
//
//The package itself never prints: recoverable findings (duplicate
//parameters, removed terms, tolerance violations) are aggregated into
//Report values for the caller to log, while fatal conditions are
//returned as errors identifying the molecule and entity involved.
package fftool
