// Copyright 2020 thinkgos (thinkgo@aliyun.com).  All rights reserved.
// Use of this source code is governed by a version 3 of the GNU General
// Public License, license that can be found in the LICENSE file.

package asdu

// System information in the monitoring direction: M_EI_NA_1, end of
// initialization. An outstation sends this unsolicited the first time
// it comes up and again after any local restart, so a master never
// constructs one — only decodes what arrives. See companion standard
// 101, subclass 7.3.3.1.

// GetEndOfInitialization decodes an M_EI_NA_1 ASDU into the
// information object address it names (usually InfoObjAddrIrrelevant)
// and the cause-of-initialization byte describing what restarted.
func (sf *ASDU) GetEndOfInitialization() (InfoObjAddr, CauseOfInitial) {
	return sf.DecodeInfoObjAddr(), ParseCauseOfInitial(sf.infoObj[0])
}
